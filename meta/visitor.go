package meta

// ClassVisitor receives typed traversal callbacks from Class.Visit,
// Property.Accept, Function.Accept and Enum.Accept, enabling external
// processing keyed by concrete member kind without downcasting.
//
// Implementations usually embed NopVisitor and override only the
// callbacks they care about.
type ClassVisitor interface {
	VisitClass(c *Class)
	VisitSimpleProperty(p *SimpleProperty)
	VisitArrayProperty(p *ArrayProperty)
	VisitEnumProperty(p *EnumProperty)
	VisitUserProperty(p *UserProperty)
	VisitFunction(f *Function)
	VisitEnum(e *Enum)
}

// NopVisitor is a ClassVisitor whose callbacks all do nothing.
type NopVisitor struct{}

func (NopVisitor) VisitClass(*Class)                   {}
func (NopVisitor) VisitSimpleProperty(*SimpleProperty) {}
func (NopVisitor) VisitArrayProperty(*ArrayProperty)   {}
func (NopVisitor) VisitEnumProperty(*EnumProperty)     {}
func (NopVisitor) VisitUserProperty(*UserProperty)     {}
func (NopVisitor) VisitFunction(*Function)             {}
func (NopVisitor) VisitEnum(*Enum)                     {}
