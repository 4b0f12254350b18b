package reqy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	Name     string
	Nickname string `json:"nick,omitempty"`
	Email    string `yaml:"mail"`
	age      int
}

type job struct {
	title string
}

func (j job) GetTitle() string { return j.title }
func (j job) CanHeFixIt() bool { return true }
func (j job) Describe(string) string { return "" }

type record struct {
	title string
}

func (r *record) GetTitle() string { return r.title }
func (r record) Salary() (int, error) { return 0, nil }
func (r record) GetLevel() (string, error) { return "", nil }
func (r record) Level() string { return "senior" }

type selfResolving map[string]any

func (s selfResolving) ResolveField(key string) (any, bool) {
	if key == "virtual" {
		return "computed", true
	}
	return nil, false
}

type stringKey string

func TestDefaultResolver(t *testing.T) {
	r := DefaultResolver()

	tests := []struct {
		name      string
		data      any
		key       string
		want      any
		wantFound bool
	}{
		{"map hit", map[string]any{"foo": "bar"}, "foo", "bar", true},
		{"map nil value is found", map[string]any{"foo": nil}, "foo", nil, true},
		{"map miss", map[string]any{"foo": "bar"}, "baz", nil, false},
		{"typed map", map[string]int{"n": 3}, "n", 3, true},
		{"named key type", map[stringKey]string{"k": "v"}, "k", "v", true},
		{"pointer to map", &map[string]any{"foo": 1}, "foo", 1, true},
		{"struct field by name", person{Name: "Ada"}, "name", "Ada", true},
		{"struct field by json tag", person{Nickname: "ada"}, "nick", "ada", true},
		{"struct field by yaml tag", &person{Email: "a@b.c"}, "mail", "a@b.c", true},
		{"unexported struct field", person{age: 3}, "age", nil, false},
		{"Get accessor", job{title: "dev"}, "title", "dev", true},
		{"plain accessor", job{}, "canHeFixIt", true, true},
		{"accessor with arguments", job{}, "describe", nil, false},
		{"pointer receiver accessor on value", record{title: "dev"}, "title", "dev", true},
		{"pointer receiver accessor on pointer", &record{title: "ops"}, "title", "ops", true},
		{"accessor returning an error is skipped", record{}, "salary", nil, false},
		{"falls back past an erroring Get accessor", record{}, "level", "senior", true},
		{"self resolver wins", selfResolving{"virtual": "stored"}, "virtual", "computed", true},
		{"self resolver falls through to map", selfResolving{"other": 1}, "other", 1, true},
		{"nil data", nil, "foo", nil, false},
		{"nil pointer", (*person)(nil), "name", nil, false},
		{"scalar data", "text", "foo", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := r.Resolve(tt.data, tt.key)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverFunc(t *testing.T) {
	r := ResolverFunc(func(data any, key string) (any, bool) {
		return key + "!", true
	})
	got, found := r.Resolve(nil, "x")
	assert.True(t, found)
	assert.Equal(t, "x!", got)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "CanHeFixIt", capitalize("canHeFixIt"))
	assert.Equal(t, "Title", capitalize("title"))
	assert.Equal(t, "ÉtatCivil", capitalize("étatCivil"))
}
