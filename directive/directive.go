// Package directive holds the fixed directive tables the rules check against.
//
// The tables describe the AngularJS 1.x directive set. They are read-only and
// shared by every concurrent scan; nothing in the module mutates them.
package directive

// Canonical is the reference list of directive names in dashed form, used to
// detect typos and to resolve attribute-prefixed variants.
var Canonical = []string{
	"ng-app",
	"ng-bind",
	"ng-bind-html",
	"ng-bind-template",
	"ng-blur",
	"ng-change",
	"ng-checked",
	"ng-class",
	"ng-class-even",
	"ng-class-odd",
	"ng-click",
	"ng-cloak",
	"ng-controller",
	"ng-copy",
	"ng-csp",
	"ng-cut",
	"ng-dblclick",
	"ng-disabled",
	"ng-false-value",
	"ng-focus",
	"ng-form",
	"ng-hide",
	"ng-href",
	"ng-if",
	"ng-include",
	"ng-init",
	"ng-jq",
	"ng-keydown",
	"ng-keypress",
	"ng-keyup",
	"ng-list",
	"ng-max",
	"ng-maxlength",
	"ng-message",
	"ng-message-default",
	"ng-message-exp",
	"ng-messages",
	"ng-messages-include",
	"ng-messages-multiple",
	"ng-min",
	"ng-minlength",
	"ng-model",
	"ng-model-options",
	"ng-mousedown",
	"ng-mouseenter",
	"ng-mouseleave",
	"ng-mousemove",
	"ng-mouseover",
	"ng-mouseup",
	"ng-non-bindable",
	"ng-open",
	"ng-options",
	"ng-paste",
	"ng-pattern",
	"ng-pluralize",
	"ng-readonly",
	"ng-ref",
	"ng-ref-read",
	"ng-repeat",
	"ng-repeat-end",
	"ng-repeat-start",
	"ng-required",
	"ng-selected",
	"ng-show",
	"ng-src",
	"ng-srcset",
	"ng-step",
	"ng-strict-di",
	"ng-style",
	"ng-submit",
	"ng-swipe-left",
	"ng-swipe-right",
	"ng-switch",
	"ng-switch-default",
	"ng-switch-when",
	"ng-transclude",
	"ng-trim",
	"ng-true-value",
	"ng-value",
	"ng-view",
}

var canonicalSet = func() map[string]bool {
	m := make(map[string]bool, len(Canonical))
	for _, name := range Canonical {
		m[name] = true
	}
	return m
}()

// IsCanonical reports whether a dashed name is a known directive.
func IsCanonical(dashed string) bool {
	return canonicalSet[dashed]
}

// DynamicPrefixes are key prefixes whose suffix is user-chosen
// (ng-attr-x, ng-on-x, ng-prop-x); such keys are never typos.
var DynamicPrefixes = []string{"ngAttr", "ngOn", "ngProp"}

// ReservedLoopNames may not be used as a repeat alias.
var ReservedLoopNames = map[string]bool{
	"null":      true,
	"undefined": true,
	"this":      true,
	"$index":    true,
	"$first":    true,
	"$middle":   true,
	"$last":     true,
	"$even":     true,
	"$odd":      true,
	"$parent":   true,
	"$root":     true,
	"$id":       true,
}

// Deprecated maps removed directive keys to their replacement.
var Deprecated = map[string]string{
	"ngBindHtmlUnsafe": "ngBindHtml",
	"ngModelInstant":   "ngModelOptions",
}

// AllowedEmpty lists directives that are meaningful without a value.
var AllowedEmpty = map[string]bool{
	"ngCloak":            true,
	"ngTransclude":       true,
	"ngApp":              true,
	"ngView":             true,
	"ngCsp":              true,
	"ngJq":               true,
	"ngNonBindable":      true,
	"ngStrictDi":         true,
	"ngForm":             true,
	"ngMessagesMultiple": true,
	"ngMessageDefault":   true,
	"ngSwitchDefault":    true,
	"ngRepeatEnd":        true,
}

// Events maps native HTML event attributes to their directive counterpart.
var Events = map[string]string{
	"onclick":      "ngClick",
	"ondblclick":   "ngDblclick",
	"onchange":     "ngChange",
	"onsubmit":     "ngSubmit",
	"onblur":       "ngBlur",
	"onfocus":      "ngFocus",
	"onkeydown":    "ngKeydown",
	"onkeyup":      "ngKeyup",
	"onkeypress":   "ngKeypress",
	"onmousedown":  "ngMousedown",
	"onmouseup":    "ngMouseup",
	"onmouseenter": "ngMouseenter",
	"onmouseleave": "ngMouseleave",
	"onmousemove":  "ngMousemove",
	"onmouseover":  "ngMouseover",
	"oncopy":       "ngCopy",
	"oncut":        "ngCut",
	"onpaste":      "ngPaste",
}
