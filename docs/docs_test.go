package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var (
	routerAnnotation   = regexp.MustCompile(`^//\s*@Router\s+(\S+)\s+\[(\w+)\]`)
	responseAnnotation = regexp.MustCompile(`^//\s*@(?:Success|Failure)\s+(\d{3})\b`)
)

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Responses map[string]json.RawMessage `json:"responses"`
	} `json:"paths"`
}

// annotatedRoutes reads the handler sources and returns "METHOD path" mapped
// to the sorted status codes declared for it.
func annotatedRoutes(t *testing.T) map[string][]string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "internal", "handlers", "*.go"))
	require.NoError(t, err)

	routes := map[string][]string{}
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		f, err := os.Open(file)
		require.NoError(t, err)

		var codes []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if m := responseAnnotation.FindStringSubmatch(line); m != nil {
				codes = append(codes, m[1])
				continue
			}
			if m := routerAnnotation.FindStringSubmatch(line); m != nil {
				sort.Strings(codes)
				routes[strings.ToUpper(m[2])+" "+m[1]] = codes
				codes = nil
			}
		}
		require.NoError(t, scanner.Err())
		f.Close()
	}
	return routes
}

func registeredDoc(t *testing.T) swaggerDoc {
	t.Helper()
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestDocumentMatchesHandlerAnnotations(t *testing.T) {
	want := annotatedRoutes(t)
	require.NotEmpty(t, want)

	got := map[string][]string{}
	for path, methods := range registeredDoc(t).Paths {
		for method, op := range methods {
			codes := make([]string, 0, len(op.Responses))
			for code := range op.Responses {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			got[strings.ToUpper(method)+" "+path] = codes
		}
	}

	assert.Equal(t, want, got)
}

func TestSwaggerInfo(t *testing.T) {
	assert.Equal(t, "Campaign API", SwaggerInfo.Title)
	assert.Equal(t, "/", SwaggerInfo.BasePath)
}
