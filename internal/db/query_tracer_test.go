package db

import "testing"

func TestQueryTableExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "select",
			query: "SELECT id, code FROM orders WHERE code = $1",
			want:  "orders",
		},
		{
			name:  "insert",
			query: "INSERT INTO packages (id, order_code) VALUES ($1, $2)",
			want:  "packages",
		},
		{
			name:  "update",
			query: "UPDATE products SET name = $2 WHERE id = $1",
			want:  "products",
		},
		{
			name:  "delete",
			query: "DELETE FROM carts WHERE user_id = $1",
			want:  "carts",
		},
		{
			name:  "no table",
			query: "SELECT 1",
			want:  "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := queryTable(normalizeQuery(tc.query)); got != tc.want {
				t.Fatalf("queryTable(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestQueryOperation(t *testing.T) {
	t.Parallel()

	if got := queryOperation("select * from orders"); got != "SELECT" {
		t.Fatalf("queryOperation() = %q, want SELECT", got)
	}
	if got := queryOperation(""); got != "" {
		t.Fatalf("queryOperation(empty) = %q, want empty", got)
	}
}
