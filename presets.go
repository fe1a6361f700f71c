package overlay

// Preset constructors for the common trading annotations. They fill in
// kind, shape, placement and connector; callers set Price (or Anchor) and
// Priority as needed.

// BuyMarker is a green labelled pin hanging below the anchor.
func BuyMarker(id string, t, price float64, label string) Marker {
	return Marker{
		ID: id, Time: t, Price: price, Label: label,
		Kind:  KindBuy,
		Shape: Shape{Kind: ShapeLabeledPin},
		Side:  PlaceBelow,
		Lead:  LineShort,
	}
}

// SellMarker is a red labelled pin standing above the anchor.
func SellMarker(id string, t, price float64, label string) Marker {
	return Marker{
		ID: id, Time: t, Price: price, Label: label,
		Kind:  KindSell,
		Shape: Shape{Kind: ShapeLabeledPin},
		Side:  PlaceAbove,
		Lead:  LineShort,
	}
}

// SurgeMarker is an up triangle above the anchor.
func SurgeMarker(id string, t, price float64) Marker {
	return Marker{
		ID: id, Time: t, Price: price,
		Kind:  KindSurge,
		Shape: Shape{Kind: ShapeTriangleUp},
		Side:  PlaceAbove,
		Lead:  LineShort,
	}
}

// PlungeMarker is a down triangle below the anchor.
func PlungeMarker(id string, t, price float64) Marker {
	return Marker{
		ID: id, Time: t, Price: price,
		Kind:  KindPlunge,
		Shape: Shape{Kind: ShapeTriangleDown},
		Side:  PlaceBelow,
		Lead:  LineShort,
	}
}

// EventMarker is a purple circle with its label underneath, pinned to the
// top band of the chart.
func EventMarker(id string, t float64, label string) Marker {
	return Marker{
		ID: id, Time: t, Label: label,
		Anchor: AnchorTop,
		Kind:   KindEvent,
		Shape:  Shape{Kind: ShapeCircle},
		Lead:   LineLong,
	}
}

// TextMarker is a bare label.
func TextMarker(id string, t, price float64, label string, lead LineLength) Marker {
	return Marker{
		ID: id, Time: t, Price: price, Label: label,
		Kind:  KindInfo,
		Shape: Shape{Kind: ShapeText},
		Lead:  lead,
	}
}

// NumberMarker is a pin enclosing a short sequence number.
func NumberMarker(id string, t, price float64, label string) Marker {
	return Marker{
		ID: id, Time: t, Price: price, Label: label,
		Kind:  KindNumber,
		Shape: Shape{Kind: ShapeLabeledPin},
		Lead:  LineShort,
	}
}
