package forum

import "testing"

func TestBuildQueryNarrowWithSortAndStatus(t *testing.T) {
	t.Parallel()
	d := Descriptor{Type: "ZeroDivisionError", Message: "division by zero"}
	o := Options{Criteria: CriteriaNarrow, SortBy: "likes", Status: "solved"}

	got := BuildQuery(d, o)
	want := "ZeroDivisionError: division by zero order:likes status:solved"
	if got != want {
		t.Fatalf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuildQueryBroadDropsUnknownSort(t *testing.T) {
	t.Parallel()
	d := Descriptor{Type: "TypeError", Message: "unsupported operand"}
	o := Options{Criteria: CriteriaBroad, SortBy: "bogus", Status: "open"}

	got := BuildQuery(d, o)
	want := "TypeError status:open"
	if got != want {
		t.Fatalf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuildQueryClauses(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		d    Descriptor
		o    Options
		want string
	}{
		{
			name: "type only",
			d:    Descriptor{Type: "ValueError", Message: "ignored in broad"},
			o:    Options{Criteria: CriteriaBroad},
			want: "ValueError",
		},
		{
			name: "unrecognized criteria behaves as broad",
			d:    Descriptor{Type: "ValueError", Message: "msg"},
			o:    Options{Criteria: "fuzzy"},
			want: "ValueError",
		},
		{
			name: "narrow keeps message verbatim including colons",
			d:    Descriptor{Type: "ValueError", Message: `invalid literal: 'foo'`},
			o:    Options{Criteria: CriteriaNarrow},
			want: `ValueError: invalid literal: 'foo'`,
		},
		{
			name: "unknown status dropped",
			d:    Descriptor{Type: "KeyError"},
			o:    Options{SortBy: "views", Status: "resolved"},
			want: "KeyError order:views",
		},
		{
			name: "all recognized sorts accepted",
			d:    Descriptor{Type: "OSError"},
			o:    Options{SortBy: "latest_topic"},
			want: "OSError order:latest_topic",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildQuery(tc.d, tc.o); got != tc.want {
				t.Fatalf("BuildQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}
