package orchestrator

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
)

// EndpointOverride replaces where and how the form of one operation submits.
// Zero values keep the operation's own path and method.
type EndpointOverride struct {
	OperationID string
	Action      string
	Method      string
	Title       string
	SubmitLabel string
}

// WithEndpointOverrides registers overrides keyed by operation id. Invalid
// overrides surface as an initialisation error from Generate.
func WithEndpointOverrides(overrides []EndpointOverride) Option {
	cloned := append([]EndpointOverride(nil), overrides...)
	return func(o *Orchestrator) {
		if len(cloned) == 0 || o == nil {
			return
		}
		if o.endpointOverrides == nil {
			o.endpointOverrides = make(map[string]EndpointOverride)
		}
		for _, override := range cloned {
			if err := validateEndpointOverride(override); err != nil {
				o.initialiseErr = appendInitialiseError(o.initialiseErr, err)
				continue
			}
			override.OperationID = strings.TrimSpace(override.OperationID)
			o.endpointOverrides[override.OperationID] = override
		}
	}
}

func validateEndpointOverride(override EndpointOverride) error {
	if strings.TrimSpace(override.OperationID) == "" {
		return errors.New("orchestrator: endpoint override requires operation id")
	}
	if method := strings.TrimSpace(override.Method); method != "" {
		switch strings.ToUpper(method) {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return fmt.Errorf("orchestrator: endpoint override %s: unsupported method %q", override.OperationID, method)
		}
	}
	return nil
}

func appendInitialiseError(existing, err error) error {
	if err == nil {
		return existing
	}
	if existing == nil {
		return err
	}
	return errors.Join(existing, err)
}

// endpointFor merges the override registered for op with op's own path and
// method.
func (o *Orchestrator) endpointFor(op openapi.Operation) EndpointOverride {
	endpoint := EndpointOverride{
		OperationID: op.ID,
		Action:      op.Path,
		Method:      op.Method,
	}
	override, ok := o.endpointOverrides[op.ID]
	if !ok {
		return endpoint
	}
	if action := strings.TrimSpace(override.Action); action != "" {
		endpoint.Action = action
	}
	if method := strings.TrimSpace(override.Method); method != "" {
		endpoint.Method = strings.ToUpper(method)
	}
	endpoint.Title = override.Title
	endpoint.SubmitLabel = override.SubmitLabel
	return endpoint
}

// formMethod is the method attribute an HTML form can carry.
func (e EndpointOverride) formMethod() string {
	if strings.EqualFold(e.Method, http.MethodGet) {
		return "get"
	}
	return "post"
}

func (e EndpointOverride) hidden() []render.HiddenField {
	switch strings.ToUpper(e.Method) {
	case "", http.MethodGet, http.MethodPost:
		return nil
	default:
		return []render.HiddenField{render.MethodOverride(e.Method)}
	}
}
