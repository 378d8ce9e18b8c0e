/*
Package cssmx implements a macro-expanding CSS preprocessor.

Stylesheets are written with ¤-prefixed macro invocations and nested
selector blocks. Preprocessing runs in four stages. First the macro
expander rewrites the text, resolving variables, builtin functions, and
user-defined macros with no structural knowledge of CSS. The expanded text
is then lexed into a structural tree of at-rules, declarations, and rule
sets. Nested rule sets are denested into flat rule sets with combined
selectors. Finally the tree is serialized back to plain CSS text.

Basics

An invocation is the marker, an identifier, and optional arguments:

	¤set(accent, #808080)
	a {
		color: ¤get(accent);
		:hover { color: ¤lighten(¤get(accent), 25%); }
	}

ExpandAndDenest turns that into flat CSS:

	a {
		color: #808080;
	}

	a:hover {
		color: #c0c0c0;
	}

On top of the generic engine (package macro) this package registers the
CSS builtins: prefixed, which repeats a declaration under each vendor
prefix, and the color functions lighten, darken, saturate, desaturate, and
rotateHue, which transform hex color literals in HSL space (package color).

The engine is a trusted-author preprocessor: it does not validate CSS
grammar, and it is not hardened against hostile input beyond a fixed
recursion-depth ceiling.
*/
package cssmx
