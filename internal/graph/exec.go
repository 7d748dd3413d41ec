package graph

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query" form:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

// Executor runs requests against a schema.
type Executor struct {
	schema graphql.Schema
}

func NewExecutor(schema graphql.Schema) *Executor {
	return &Executor{schema: schema}
}

func (e *Executor) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// ExecuteQueryOnly refuses mutations and login. It serves GET requests, whose
// query strings end up in browser history and proxy logs.
func (e *Executor) ExecuteQueryOnly(ctx context.Context, req Request) *graphql.Result {
	switch {
	case IsMutation(req.Query, req.OperationName):
		return rejected("mutations are only accepted over POST")
	case SelectsField(req.Query, req.OperationName, "login"):
		return rejected("login is only accepted over POST")
	}
	return e.Execute(ctx, req)
}

func rejected(msg string) *graphql.Result {
	err := &Error{Message: msg, Code: CodeBadUserInput}
	return &graphql.Result{Errors: []gqlerrors.FormattedError{{
		Message:    err.Message,
		Extensions: err.Extensions(),
	}}}
}

// IsMutation reports whether the operation selected by operationName is a
// mutation. Unparseable documents report false and fail during execution.
func IsMutation(query, operationName string) bool {
	_, op := selectOperation(query, operationName)
	return op != nil && op.Operation == ast.OperationTypeMutation
}

// SelectsField reports whether the selected operation asks for the root field
// name, directly or through fragments.
func SelectsField(query, operationName, name string) bool {
	doc, op := selectOperation(query, operationName)
	if op == nil {
		return false
	}

	fragments := make(map[string]*ast.FragmentDefinition)
	for _, def := range doc.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok && frag.Name != nil {
			fragments[frag.Name.Value] = frag
		}
	}
	return selectsField(op.SelectionSet, fragments, name, make(map[string]bool))
}

func selectsField(set *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition, name string, seen map[string]bool) bool {
	if set == nil {
		return false
	}
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if s.Name != nil && s.Name.Value == name {
				return true
			}
		case *ast.InlineFragment:
			if selectsField(s.SelectionSet, fragments, name, seen) {
				return true
			}
		case *ast.FragmentSpread:
			if s.Name == nil || seen[s.Name.Value] {
				continue
			}
			seen[s.Name.Value] = true
			if frag, ok := fragments[s.Name.Value]; ok && selectsField(frag.SelectionSet, fragments, name, seen) {
				return true
			}
		}
	}
	return false
}

func selectOperation(query, operationName string) (*ast.Document, *ast.OperationDefinition) {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return nil, nil
	}

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}
		return doc, op
	}
	return doc, nil
}
