package directive

// Exclusive groups contain directives that must not appear together on one
// element.
var Exclusive = [][]string{
	{"ngShow", "ngHide"},
	{"ngBind", "ngBindHtml", "ngBindTemplate"},
	{"ngSwitchWhen", "ngSwitchDefault"},
}

// NativePairs pair a native attribute with the directive that replaces it.
// Using both lets the browser act on the uninterpolated native value.
var NativePairs = [][]string{
	{"href", "ngHref"},
	{"src", "ngSrc"},
	{"srcset", "ngSrcset"},
	{"disabled", "ngDisabled"},
	{"checked", "ngChecked"},
	{"readonly", "ngReadonly"},
	{"selected", "ngSelected"},
	{"open", "ngOpen"},
}

// AliasPairs pair a native validation attribute with its directive alias.
// Both feed the same validator, so only one should be set.
var AliasPairs = [][]string{
	{"min", "ngMin"},
	{"max", "ngMax"},
	{"step", "ngStep"},
	{"pattern", "ngPattern"},
	{"minlength", "ngMinlength"},
	{"maxlength", "ngMaxlength"},
	{"required", "ngRequired"},
}

// Requirement describes a directive that only works inside another one.
type Requirement struct {
	// Keys trigger the requirement when present as an attribute or as the
	// normalized element name.
	Keys []string
	// Parents satisfy the requirement when carried by an enclosing element,
	// either as an attribute or as the element name.
	Parents []string
	// Self allows the parent directive to sit on the element itself.
	Self bool
}

// Requirements lists the ancestor relationships checked by the
// ancestor-required rule.
var Requirements = []Requirement{
	{Keys: []string{"ngClassEven", "ngClassOdd"}, Parents: []string{"ngRepeat", "ngRepeatStart"}, Self: true},
	{Keys: []string{"ngSwitchWhen", "ngSwitchDefault"}, Parents: []string{"ngSwitch"}},
	{Keys: []string{"ngMessage", "ngMessageExp", "ngMessageDefault", "ngMessagesInclude"}, Parents: []string{"ngMessages"}},
}
