// Package meta implements a runtime metaobject layer: native Go types are
// described as named, introspectable metaclasses holding property, function
// and constructor tables, and callers read, write, invoke and construct
// through string names and a tagged Value representation without
// compile-time knowledge of the concrete type.
//
// A metamodel is declared once, at startup, through the builder surface:
//
//	reg := meta.NewRegistry()
//
//	b, err := meta.Declare[Point](reg, "Point")
//	if err != nil { ... }
//	b.Constructor(nil, func([]meta.Value) *Point { return &Point{} }).
//		Property("x", meta.KindInt,
//			func(p *Point) meta.Value { return meta.Int(int64(p.X)) },
//			func(p *Point, v meta.Value) { n, _ := v.ToInt(); p.X = int(n) }).
//		Property("y", meta.KindInt,
//			func(p *Point) meta.Value { return meta.Int(int64(p.Y)) },
//			func(p *Point, v meta.Value) { n, _ := v.ToInt(); p.Y = int(n) })
//	if err := b.Err(); err != nil { ... }
//
// At use time, metaclasses are resolved from the registry by name or by
// bound native type, and instances are manipulated through UserObject
// handles:
//
//	c, _ := reg.ClassByName("Point")
//	obj := c.Construct()
//	prop, _ := c.Property("x")
//	_ = prop.Set(obj, meta.Int(5))
//
// The registry is passive shared state: declaration is expected to finish
// before concurrent use begins, though lookups are independently guarded so
// readers never observe a half-registered metaclass.
package meta
