package sanitize

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want Reason
	}{
		{"plain word", "hello", ""},
		{"sentence with spaces", "fix the tests please", ""},
		{"empty", "", ""},
		{"quote and slash", `it's a/b "c"`, ""},
		{"inner dash", "a-b", ""},
		{"trailing dash", "a-", ""},
		{"unicode", "héllo 日本", ""},
		{"exactly max", strings.Repeat("a", MaxArgLength), ""},

		{"semicolon", "a;b", ReasonMetachar},
		{"ampersand", "a&b", ReasonMetachar},
		{"pipe", "a|b", ReasonMetachar},
		{"backtick", "a`b`", ReasonMetachar},
		{"dollar", "$HOME", ReasonMetachar},
		{"open paren", "f(", ReasonMetachar},
		{"close paren", ")", ReasonMetachar},
		{"open brace", "{", ReasonMetachar},
		{"close brace", "}", ReasonMetachar},
		{"open bracket", "[x", ReasonMetachar},
		{"close bracket", "x]", ReasonMetachar},
		{"less than", "<in", ReasonMetachar},
		{"greater than", "out>", ReasonMetachar},
		{"command substitution", "hello; rm -rf /", ReasonMetachar},

		{"leading dash", "-h", ReasonLeadingDash},
		{"double dash", "--version", ReasonLeadingDash},
		{"bare dash", "-", ReasonLeadingDash},
		{"space then dash", "  -x", ReasonLeadingDash},
		{"tab then dash", "\t-x", ReasonLeadingDash},
		{"newline then dash", "\n-x", ReasonLeadingDash},

		{"too long", strings.Repeat("a", MaxArgLength+1), ReasonTooLong},
		{"multibyte at max", strings.Repeat("é", MaxArgLength), ""},
		{"multibyte over max", strings.Repeat("é", MaxArgLength+1), ReasonTooLong},
		{"multibyte under max", strings.Repeat("é", 600), ""},
		{"metachar wins over length", strings.Repeat("a", MaxArgLength) + ";", ReasonMetachar},
		{"metachar wins over dash", "-a;b", ReasonMetachar},
		{"dash wins over length", "-" + strings.Repeat("a", MaxArgLength), ReasonLeadingDash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.arg); got != tt.want {
				t.Errorf("Check(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestArgs_Accepts(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"nil", nil},
		{"single", []string{"hello"}},
		{"order preserved", []string{"c", "b", "a", "b"}},
		{"whitespace kept", []string{"  padded  ", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Args(tt.args)
			if err != nil {
				t.Fatalf("Args(%q) error: %v", tt.args, err)
			}
			if len(got) != len(tt.args) {
				t.Fatalf("Args(%q) = %q, want same length", tt.args, got)
			}
			if len(tt.args) > 0 && !reflect.DeepEqual(got, tt.args) {
				t.Errorf("Args(%q) = %q", tt.args, got)
			}
		})
	}
}

func TestArgs_ReturnsFreshSlice(t *testing.T) {
	in := []string{"a", "b"}
	out, err := Args(in)
	if err != nil {
		t.Fatalf("Args error: %v", err)
	}

	out[0] = "changed"
	if in[0] != "a" {
		t.Errorf("Args aliased its input: in[0] = %q", in[0])
	}
}

func TestArgs_FirstRejectionAbortsList(t *testing.T) {
	out, err := Args([]string{"ok", "-v", "a;b"})
	if err == nil {
		t.Fatal("Args should reject")
	}
	if out != nil {
		t.Errorf("Args returned %q alongside an error", out)
	}

	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("error %T is not a *RejectionError", err)
	}
	if rej.Index != 1 || rej.Arg != "-v" || rej.Reason != ReasonLeadingDash {
		t.Errorf("rejection = %+v, want index 1 %q %q", rej, "-v", ReasonLeadingDash)
	}
}

func TestRejectionError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *RejectionError
		want string
	}{
		{
			name: "metachar",
			err:  &RejectionError{Arg: "a;b", Index: 0, Reason: ReasonMetachar},
			want: `argument 1 "a;b" contains shell metacharacter`,
		},
		{
			name: "truncated",
			err:  &RejectionError{Arg: strings.Repeat("x", 50) + "|", Index: 2, Reason: ReasonMetachar},
			want: `argument 3 "` + strings.Repeat("x", 40) + `..." contains shell metacharacter`,
		},
		{
			name: "truncated on characters",
			err:  &RejectionError{Arg: strings.Repeat("é", 50) + "|", Index: 0, Reason: ReasonMetachar},
			want: `argument 1 "` + strings.Repeat("é", 40) + `..." contains shell metacharacter`,
		},
		{
			name: "too long",
			err:  &RejectionError{Arg: strings.Repeat("x", 1001), Index: 0, Reason: ReasonTooLong},
			want: "argument 1 exceeds maximum length (1001 > 1000 characters)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
