package textgen

import "testing"

func TestFilterAccept(t *testing.T) {
	testCases := []struct {
		name   string
		filter Filter
		input  string
		want   bool
	}{
		{name: "Empty filter accepts anything", filter: Filter{}, input: "anything", want: true},
		{name: "Too short", filter: Filter{MinLength: 4}, input: "abc", want: false},
		{name: "Exactly minimum", filter: Filter{MinLength: 3}, input: "abc", want: true},
		{name: "Too long", filter: Filter{MaxLength: 3}, input: "abcd", want: false},
		{name: "Zero max is unbounded", filter: Filter{MaxLength: 0}, input: "abcdefghijklmnop", want: true},
		{name: "Runes not bytes", filter: Filter{MaxLength: 3}, input: "éèê", want: true},
		{name: "Prefix present", filter: Filter{StartsWith: "ze"}, input: "zeus", want: true},
		{name: "Prefix absent", filter: Filter{StartsWith: "ze"}, input: "hermes", want: false},
		{name: "Suffix present", filter: Filter{EndsWith: "eus"}, input: "zeus", want: true},
		{name: "Suffix absent", filter: Filter{EndsWith: "eus"}, input: "hades", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Accept(tc.input); got != tc.want {
				t.Errorf("Accept(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestFilterOverride(t *testing.T) {
	base := Filter{MinLength: 4, MaxLength: 12, StartsWith: "a", EndsWith: "z"}

	if got := base.Override(0, 0, "", ""); got != base {
		t.Errorf("Override with zero values changed the filter: got %+v, want %+v", got, base)
	}

	got := base.Override(2, 5, "b", "y")
	want := Filter{MinLength: 2, MaxLength: 5, StartsWith: "b", EndsWith: "y"}
	if got != want {
		t.Errorf("Override() got %+v, want %+v", got, want)
	}

	got = base.Override(0, 8, "", "s")
	want = Filter{MinLength: 4, MaxLength: 8, StartsWith: "a", EndsWith: "s"}
	if got != want {
		t.Errorf("partial Override() got %+v, want %+v", got, want)
	}
}

func TestFilterLower(t *testing.T) {
	f := Filter{StartsWith: "Mc", EndsWith: "EUS"}.Lower()
	if f.StartsWith != "mc" || f.EndsWith != "eus" {
		t.Errorf("Lower() got %+v", f)
	}
}
