package builder

import (
	"strconv"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// BindOptions configures Bind's event/property pair.
type BindOptions struct {
	// Event defaults to "input".
	Event string
	// Prop defaults to "value".
	Prop string
}

// Bind wires the named event on node to signal.Set(el[prop]) and an
// effect that writes signal.Get() back to el[prop]. Both the listener and
// the write-back effect are owned by node and torn down by node.Dispose.
func Bind(node *Node, signal reactivity.Signal[string], opts ...BindOptions) {
	event, prop := "input", "value"
	if len(opts) > 0 {
		if opts[0].Event != "" {
			event = opts[0].Event
		}
		if opts[0].Prop != "" {
			prop = opts[0].Prop
		}
	}

	a := domkit.Get()
	unsubscribe := a.AddEventListener(node.Handle, event, func(domkit.Event) {
		v := a.GetProperty(node.Handle, prop)
		s, _ := v.(string)
		signal.Set(s)
	})
	node.own(unsubscribe)

	dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
		a.SetProperty(node.Handle, prop, signal.Get())
		return nil
	})
	node.own(func() { dispose() })
}

// Model is a convenience over Bind that picks the event and property
// from the input's type: checkbox -> checked (bool), number -> value
// coerced to/from float64, everything else -> value (string). signal must
// be a reactivity.Signal of the matching element type (bool, float64 or
// string); a signal of any other type leaves node unbound.
func Model(node *Node, signal any) {
	a := domkit.Get()
	inputType := a.GetInputType(node.Handle)

	switch inputType {
	case "checkbox":
		boolSig, ok := signal.(reactivity.Signal[bool])
		if !ok {
			return
		}
		modelBool(node, boolSig)
	case "number":
		numSig, ok := signal.(reactivity.Signal[float64])
		if !ok {
			return
		}
		modelNumber(node, numSig)
	default:
		strSig, ok := signal.(reactivity.Signal[string])
		if !ok {
			return
		}
		Bind(node, strSig)
	}
}

func modelBool(node *Node, signal reactivity.Signal[bool]) {
	a := domkit.Get()
	unsubscribe := a.AddEventListener(node.Handle, "change", func(domkit.Event) {
		v, _ := a.GetProperty(node.Handle, "checked").(bool)
		signal.Set(v)
	})
	node.own(unsubscribe)

	dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
		a.SetProperty(node.Handle, "checked", signal.Get())
		return nil
	})
	node.own(func() { dispose() })
}

func modelNumber(node *Node, signal reactivity.Signal[float64]) {
	a := domkit.Get()
	unsubscribe := a.AddEventListener(node.Handle, "input", func(domkit.Event) {
		raw := a.GetAttribute(node.Handle, "value")
		if raw == "" {
			if v := a.GetProperty(node.Handle, "value"); v != nil {
				if s, ok := v.(string); ok {
					raw = s
				}
			}
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		signal.Set(n)
	})
	node.own(unsubscribe)

	dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
		a.SetProperty(node.Handle, "value", strconv.FormatFloat(signal.Get(), 'g', -1, 64))
		return nil
	})
	node.own(func() { dispose() })
}
