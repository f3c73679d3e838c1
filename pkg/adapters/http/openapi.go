package http

import (
	"strings"

	"github.com/aretw0/typo3docs"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

// BuildOpenAPI describes the REST surface for the given catalog.
// Every operation gets its own POST path with a request schema derived from its parameters.
func BuildOpenAPI(ops []domain.Operation) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "typo3docs",
			Description: "Lookup gateway for TYPO3 documentation and extension metadata.",
			Version:     strings.TrimSpace(typo3docs.Version),
		},
		Paths: openapi3.NewPaths(),
	}

	markdown := openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/markdown"})

	list := openapi3.NewOperation()
	list.OperationID = "listOperations"
	list.Summary = "List the available operations"
	list.Responses = openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("Operation catalog").
			WithJSONSchema(openapi3.NewArraySchema().WithItems(catalogEntrySchema())),
	}))
	doc.Paths.Set("/operations", &openapi3.PathItem{Get: list})

	health := openapi3.NewOperation()
	health.OperationID = "health"
	health.Summary = "Liveness probe"
	health.Responses = openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("Service is up").
			WithJSONSchema(openapi3.NewObjectSchema().WithProperty("status", openapi3.NewStringSchema())),
	}))
	doc.Paths.Set("/healthz", &openapi3.PathItem{Get: health})

	for _, op := range ops {
		invoke := openapi3.NewOperation()
		invoke.OperationID = op.Name
		invoke.Summary = op.Description
		invoke.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Operation arguments").
				WithJSONSchema(ArgsSchema(op)),
		}
		invoke.Responses = openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Rendered document").WithContent(markdown),
			}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Single-line error document").WithContent(markdown),
			}),
		)
		doc.Paths.Set("/operations/"+op.Name, &openapi3.PathItem{Post: invoke})
	}
	return doc
}

// ArgsSchema is the JSON schema of an operation's argument object.
func ArgsSchema(op domain.Operation) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, p := range op.Params {
		var prop *openapi3.Schema
		switch p.Type {
		case domain.ParamInteger:
			prop = openapi3.NewIntegerSchema()
			if p.Min != nil {
				prop = prop.WithMin(float64(*p.Min))
			}
			if p.Max != nil {
				prop = prop.WithMax(float64(*p.Max))
			}
		default:
			prop = openapi3.NewStringSchema()
			if len(p.Enum) > 0 {
				values := make([]any, len(p.Enum))
				for i, v := range p.Enum {
					values[i] = v
				}
				prop = prop.WithEnum(values...)
			}
		}
		prop.Description = p.Description
		if p.HasDefault() {
			prop.Default = p.Default
		}
		schema = schema.WithProperty(p.Name, prop)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	if len(required) > 0 {
		schema.Required = required
	}
	no := false
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: &no}
	return schema
}

func catalogEntrySchema() *openapi3.Schema {
	param := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema().WithEnum(string(domain.ParamString), string(domain.ParamInteger))).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("required", openapi3.NewBoolSchema())

	return openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("params", openapi3.NewArraySchema().WithItems(param))
}
