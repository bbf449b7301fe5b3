package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reify-dev/reify/meta"
)

var demoVerbose bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Declare a sample metamodel and dump it",
	Long: `Declare a small metamodel (Point, Shape, Circle and a Color enum),
exercise it through the generic property and function surface, and dump
every registered metaclass with a visitor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []meta.Option{}
		if demoVerbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()
			opts = append(opts, meta.WithLogger(logger))
		}
		reg := meta.NewRegistry(opts...)
		defer reg.Close()

		if err := declareDemoModel(reg); err != nil {
			return err
		}
		if err := exerciseDemoModel(reg, cmd.OutOrStdout()); err != nil {
			return err
		}
		dumpRegistry(reg, cmd.OutOrStdout())
		return nil
	},
}

func init() {
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "log registrations")
}

// Native demo types. Circle keeps its Shape after another field so the
// base view demonstrates a real layout adjustment.
type Point struct {
	X, Y int
}

type Shape struct {
	Label   string
	Visible bool
}

type Circle struct {
	Radius float64
	Shape  Shape
}

// declareDemoModel populates the registry with the sample metamodel.
func declareDemoModel(reg *meta.Registry) error {
	colors, err := meta.DeclareEnum[int](reg, "Color")
	if err != nil {
		return err
	}
	colors.Value("red", 0).Value("green", 1).Value("blue", 2)
	if err := colors.Err(); err != nil {
		return err
	}

	pb, err := meta.Declare[Point](reg, "Point")
	if err != nil {
		return err
	}
	pb.Constructor(nil, func([]meta.Value) *Point { return &Point{} }).
		Property("x", meta.KindInt,
			func(p *Point) meta.Value { return meta.Int(int64(p.X)) },
			func(p *Point, v meta.Value) { n, _ := v.ToInt(); p.X = int(n) }).
		Property("y", meta.KindInt,
			func(p *Point) meta.Value { return meta.Int(int64(p.Y)) },
			func(p *Point, v meta.Value) { n, _ := v.ToInt(); p.Y = int(n) })
	if err := pb.Err(); err != nil {
		return err
	}

	sb, err := meta.Declare[Shape](reg, "Shape")
	if err != nil {
		return err
	}
	sb.Constructor(nil, func([]meta.Value) *Shape { return &Shape{Visible: true} }).
		Property("label", meta.KindString,
			func(s *Shape) meta.Value { return meta.String(s.Label) },
			func(s *Shape, v meta.Value) { s.Label, _ = v.ToString() }).
		Property("visible", meta.KindBool,
			func(s *Shape) meta.Value { return meta.Bool(s.Visible) },
			func(s *Shape, v meta.Value) { s.Visible, _ = v.ToBool() })
	if err := sb.Err(); err != nil {
		return err
	}

	cb, err := meta.Declare[Circle](reg, "Circle")
	if err != nil {
		return err
	}
	cb.Base(sb.Class(), func(c *Circle) any { return &c.Shape }).
		Constructor(nil, func([]meta.Value) *Circle { return &Circle{} }).
		Constructor([]meta.Kind{meta.KindReal}, func(args []meta.Value) *Circle {
			r, _ := args[0].ToReal()
			return &Circle{Radius: r}
		}).
		Property("radius", meta.KindReal,
			func(c *Circle) meta.Value { return meta.Real(c.Radius) },
			func(c *Circle, v meta.Value) { c.Radius, _ = v.ToReal() }).
		Function("area", meta.KindReal, nil, func(c *Circle, _ []meta.Value) (meta.Value, error) {
			return meta.Real(3.141592653589793 * c.Radius * c.Radius), nil
		})
	return cb.Err()
}

// exerciseDemoModel drives the declared model purely through names and
// generic values.
func exerciseDemoModel(reg *meta.Registry, w io.Writer) error {
	circleClass, err := reg.ClassByName("Circle")
	if err != nil {
		return err
	}

	obj := circleClass.Construct(meta.Real(2))
	if !obj.Valid() {
		return fmt.Errorf("no matching constructor for Circle")
	}

	radius, err := circleClass.Property("radius")
	if err != nil {
		return err
	}
	if err := radius.Set(obj, meta.String("3.5")); err != nil {
		return err
	}
	area, err := circleClass.Function("area")
	if err != nil {
		return err
	}
	result, err := area.Call(obj)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "circle radius set to 3.5, area() = %s\n", result)

	shapeClass, err := reg.ClassByName("Shape")
	if err != nil {
		return err
	}
	asShape, err := obj.ConvertTo(shapeClass)
	if err != nil {
		return err
	}
	label, err := shapeClass.Property("label")
	if err != nil {
		return err
	}
	if err := label.Set(asShape, meta.String("demo circle")); err != nil {
		return err
	}
	got, err := label.Get(asShape)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "circle viewed as Shape, label = %q\n\n", got)
	return nil
}

// dumpVisitor prints every member it visits, colored by member kind.
type dumpVisitor struct {
	meta.NopVisitor
	w io.Writer
}

var (
	classColor  = color.New(color.FgCyan, color.Bold)
	memberColor = color.New(color.FgGreen)
	enumColor   = color.New(color.FgYellow)
)

func (v *dumpVisitor) VisitClass(c *meta.Class) {
	classColor.Fprintf(v.w, "class %s", c.Name())
	if n := c.BaseCount(); n > 0 {
		fmt.Fprint(v.w, " (bases:")
		for i := 0; i < n; i++ {
			base, err := c.Base(i)
			if err != nil {
				continue
			}
			fmt.Fprintf(v.w, " %s", base.Name())
		}
		fmt.Fprint(v.w, ")")
	}
	fmt.Fprintln(v.w)
}

func (v *dumpVisitor) VisitSimpleProperty(p *meta.SimpleProperty) {
	memberColor.Fprintf(v.w, "  property %s: %s\n", p.Name(), p.Kind())
}

func (v *dumpVisitor) VisitArrayProperty(p *meta.ArrayProperty) {
	memberColor.Fprintf(v.w, "  property %s: array of %s\n", p.Name(), p.ElementKind())
}

func (v *dumpVisitor) VisitEnumProperty(p *meta.EnumProperty) {
	memberColor.Fprintf(v.w, "  property %s: enum %s\n", p.Name(), p.Enum().Name())
}

func (v *dumpVisitor) VisitUserProperty(p *meta.UserProperty) {
	memberColor.Fprintf(v.w, "  property %s: object %s\n", p.Name(), p.Class().Name())
}

func (v *dumpVisitor) VisitFunction(f *meta.Function) {
	memberColor.Fprintf(v.w, "  function %s(%d args): %s\n", f.Name(), f.ParamCount(), f.ReturnKind())
}

func (v *dumpVisitor) VisitEnum(e *meta.Enum) {
	enumColor.Fprintf(v.w, "enum %s", e.Name())
	for i := 0; i < e.Size(); i++ {
		pair, err := e.Pair(i)
		if err != nil {
			continue
		}
		fmt.Fprintf(v.w, " %s=%d", pair.Name, pair.Value)
	}
	fmt.Fprintln(v.w)
}

// dumpRegistry walks every registered metaclass and enum in registration
// order.
func dumpRegistry(reg *meta.Registry, w io.Writer) {
	if f, ok := w.(*os.File); !ok || f != os.Stdout {
		color.NoColor = true
	}
	v := &dumpVisitor{w: w}
	for i := 0; i < reg.ClassCount(); i++ {
		c, err := reg.ClassAt(i)
		if err != nil {
			continue
		}
		c.Visit(v)
	}
	for i := 0; i < reg.EnumCount(); i++ {
		e, err := reg.EnumAt(i)
		if err != nil {
			continue
		}
		e.Accept(v)
	}
}
