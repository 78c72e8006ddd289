// Package graphql mounts a graphql-go schema on an HTTP endpoint. The shop
// exposes a read-only catalogue query through it.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/aferchichi/stockshop/pkg/response"
)

// NewSchema creates a GraphQL schema from a root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

type postBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves GraphQL over HTTP. POST takes the standard JSON body;
// GET takes the query in the "query" parameter.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body postBody

		switch r.Method {
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				response.Error(w, http.StatusBadRequest, "invalid GraphQL request body")
				return
			}
		case http.MethodGet:
			body.Query = r.URL.Query().Get("query")
		default:
			response.Error(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if body.Query == "" {
			response.Error(w, http.StatusBadRequest, "missing query")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			OperationName:  body.OperationName,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
