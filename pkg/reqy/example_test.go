package reqy_test

import (
	"fmt"

	"github.com/thoreinstein/reqy/pkg/reqy"
)

func ExampleValidate() {
	data := map[string]any{
		"name":    "Ada",
		"numbers": []any{1, 50, 11},
		"job": map[string]any{
			"title":      "Senior Staff Principal Software Engineer",
			"canHeFixIt": "yes",
		},
	}
	schema := reqy.Schema{
		reqy.Bare("name"),
		reqy.Bare("email"),
		reqy.Field("numbers", reqy.Every(reqy.Odd())),
		reqy.Field("job", reqy.Schema{
			reqy.Field("title", reqy.WordCountRange(1, 4).WithLevel(reqy.SeverityWarning)),
			reqy.Field("canHeFixIt", "no"),
		}),
	}

	issues, err := reqy.Validate(data, schema)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, issue := range issues {
		fmt.Println(issue)
	}
	// Output:
	// [ERROR] key=email exists: expected field to exist
	// [ERROR] key=numbers value=[1,50,11] every <odd>: error at index 1, expected 50 to be odd
	// [WARNING] key=job.title value=Senior Staff Principal Software Engineer word count range: expected word count to be in range (1, 4), but got 5
	// [ERROR] key=job.canHeFixIt value=yes equals: expected <no>, but got <yes>
}

func ExampleEngine_Preprocess() {
	e := reqy.New(reqy.WithDefaultLevel(reqy.SeverityWarning))
	schema := reqy.Schema{reqy.Bare("id"), reqy.Field("kind", "user")}

	if err := e.Preprocess(schema); err != nil {
		fmt.Println(err)
		return
	}
	for _, entry := range schema {
		fmt.Println(entry.Key, entry.Requirement)
	}
	// Output:
	// id exists (WARNING)
	// kind equals (WARNING)
}
