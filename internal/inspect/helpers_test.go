package inspect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/datalens-cli/internal/dataset"
)

// vals builds a column: nil is null, numbers are numeric, strings are text.
func vals(in ...any) []dataset.Value {
	out := make([]dataset.Value, len(in))
	for i, v := range in {
		switch x := v.(type) {
		case nil:
			out[i] = dataset.Null()
		case int:
			out[i] = dataset.Number(float64(x))
		case float64:
			out[i] = dataset.Number(x)
		case string:
			out[i] = dataset.Text(x)
		default:
			panic("unsupported value")
		}
	}
	return out
}

type col struct {
	name   string
	values []dataset.Value
}

func build(t *testing.T, name string, cols ...col) *dataset.Dataset {
	t.Helper()
	ds := dataset.New(name)
	for _, c := range cols {
		require.NoError(t, ds.AddColumn(c.name, c.values))
	}
	return ds
}

func levels(t *testing.T, ds *dataset.Dataset, name string) []string {
	t.Helper()
	c, err := ds.Column(name)
	require.NoError(t, err)
	return c.Levels()
}
