package handlers_test

import (
	"encoding/json"
	"regexp"
	"strings"

	_ "github.com/SscSPs/ledger_core/cmd/docs"
	"github.com/swaggo/swag"
)

var ginParam = regexp.MustCompile(`:(\w+)`)

func (suite *HandlerTestSuite) TestSwaggerDocDescribesEveryRoute() {
	raw, err := swag.ReadDoc()
	suite.Require().NoError(err)

	var doc struct {
		BasePath string `json:"basePath"`
		Paths    map[string]map[string]struct {
			Parameters []struct {
				Name string `json:"name"`
				In   string `json:"in"`
			} `json:"parameters"`
			Responses map[string]any `json:"responses"`
		} `json:"paths"`
		Definitions map[string]any `json:"definitions"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(raw), &doc))
	suite.Equal("/api/v1", doc.BasePath)

	for _, route := range suite.router.Routes() {
		path := strings.TrimPrefix(route.Path, doc.BasePath)
		path = ginParam.ReplaceAllString(path, "{$1}")

		op, ok := doc.Paths[path][strings.ToLower(route.Method)]
		if !suite.Truef(ok, "%s %s is not documented", route.Method, path) {
			continue
		}
		suite.NotEmptyf(op.Responses, "%s %s has no responses", route.Method, path)

		inPath := map[string]bool{}
		for _, p := range op.Parameters {
			if p.In == "path" {
				inPath[p.Name] = true
			}
		}
		for _, m := range ginParam.FindAllStringSubmatch(route.Path, -1) {
			suite.Truef(inPath[m[1]], "%s %s does not declare path parameter %s", route.Method, path, m[1])
		}
	}

	for _, name := range []string{"dto.CreateEntryRequest", "dto.EntryResponse", "dto.TrialBalanceResponse", "handlers.errorResponse"} {
		suite.Contains(doc.Definitions, name)
	}
}
