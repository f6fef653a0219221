package driver

import "testing"

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"print 1;", false},
		{"fun f() {", true},
		{"fun f() {\n  print 1;\n}", false},
		{"print (1 +", true},
		{"print \"multi", true},
		{"print \"done\";", false},
		{"}", false},
		{"print 1 @", false},
	}

	for _, test := range tests {
		if got := IsIncomplete(test.source); got != test.want {
			t.Errorf("IsIncomplete(%q) = %v, want %v", test.source, got, test.want)
		}
	}
}
