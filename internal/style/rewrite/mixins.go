package rewrite

import (
	"fmt"
	"strings"
)

// buildMixinHandlers returns the @include-name -> rewrite-function table
// for the Mixins catalog group (spec.md §4.2, first table row group).
func buildMixinHandlers(t *Tables) map[string]func(args []string) string {
	h := map[string]func(args []string) string{
		"flexbox": func(args []string) string {
			return "display: flex;"
		},
		"flex-direction": func(args []string) string {
			return simpleProp("flex-direction", args)
		},
		"align-items": func(args []string) string {
			return simpleProp("align-items", args)
		},
		"justify-content": func(args []string) string {
			return simpleProp("justify-content", args)
		},
		"flex-wrap": func(args []string) string {
			return simpleProp("flex-wrap", args)
		},
		"transform": func(args []string) string {
			return simpleProp("transform", args)
		},
		"transition": func(args []string) string {
			return simpleProp("transition", args)
		},
		"border-radius": func(args []string) string {
			return simpleProp("border-radius", args)
		},
		"box-shadow": func(args []string) string {
			return simpleProp("box-shadow", args)
		},
		"box-sizing": func(args []string) string {
			return simpleProp("box-sizing", args)
		},
		"rotate": func(args []string) string {
			return simpleProp("transform", argOrEmpty(args, 0, "rotate(0deg)"))
		},
		"appearance": func(args []string) string {
			value := argOrEmpty(args, 0, "none")
			return fmt.Sprintf("-webkit-appearance: %s;\n-moz-appearance: %s;\nappearance: %s;", value, value, value)
		},
		"gradient": func(args []string) string {
			a, b := arg(args, 0), arg(args, 1)
			return fmt.Sprintf("background: linear-gradient(to bottom, %s, %s);", a, b)
		},
		"gradient-left-right": func(args []string) string {
			a, b := arg(args, 0), arg(args, 1)
			return fmt.Sprintf("background: linear-gradient(to right, %s, %s);", a, b)
		},
		"z-index": func(args []string) string {
			name := strings.Trim(arg(args, 0), `'"`)
			if v, ok := t.ZIndex[name]; ok {
				return fmt.Sprintf("z-index: %d;", v)
			}
			return fmt.Sprintf("z-index: %s; /* unresolved z-index name */", name)
		},
		"visually-hidden": func(args []string) string {
			return visuallyHiddenBlock
		},
		"absolute": func(args []string) string {
			return absoluteBlock(args)
		},
		"centering": func(args []string) string {
			mode := strings.Trim(arg(args, 0), `'"`)
			if mode == "both" || mode == "" {
				return centeringBothBlock
			}
			return centeringAxisBlock(mode)
		},
		"responsive-font": func(args []string) string {
			vw, min, max := arg(args, 0), arg(args, 1), arg(args, 2)
			return fmt.Sprintf("font-size: clamp(%s, %s, %s);", min, vw, max)
		},
	}
	return h
}

const visuallyHiddenBlock = `position: absolute;
width: 1px;
height: 1px;
padding: 0;
margin: -1px;
overflow: hidden;
clip: rect(0, 0, 0, 0);
white-space: nowrap;
border: 0;`

const centeringBothBlock = `position: absolute;
top: 50%;
left: 50%;
transform: translate(-50%, -50%);`

func centeringAxisBlock(axis string) string {
	switch axis {
	case "horizontal":
		return "position: absolute;\nleft: 50%;\ntransform: translateX(-50%);"
	case "vertical":
		return "position: absolute;\ntop: 50%;\ntransform: translateY(-50%);"
	default:
		return centeringBothBlock
	}
}

// absoluteBlock renders @include absolute((top: X, left: Y)) into
// position: absolute; plus one declaration per key/value pair. Keys
// recognized: top, right, bottom, left.
func absoluteBlock(args []string) string {
	var b strings.Builder
	b.WriteString("position: absolute;")
	if len(args) == 0 {
		return b.String()
	}
	pairs := strings.TrimSpace(strings.Join(args, ","))
	pairs = strings.Trim(pairs, "()")
	for _, pair := range splitArgsTopLevel(pairs) {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])
		if key == "" || val == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(val)
		b.WriteString(";")
	}
	return b.String()
}

func simpleProp(prop string, args []string) string {
	return fmt.Sprintf("%s: %s;", prop, arg(args, 0))
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func argOrEmpty(args []string, i int, fallback string) []string {
	if i < len(args) && args[i] != "" {
		return []string{args[i]}
	}
	return []string{fallback}
}

// ApplyMixins runs the Mixins catalog group over text: @include
// flexbox/transform/gradient/z-index/visually-hidden/absolute/
// centering/responsive-font calls, then the breakpoint mixin (which
// alone carries a block body instead of a bare call).
func ApplyMixins(text string, t *Tables) string {
	handlers := buildMixinHandlers(t)
	text = rewriteSimpleIncludes(text, handlers)
	text = rewriteBreakpointIncludes(text, t.Breakpoints)
	return text
}
