// function.go
package rpn

// FuncLit is an uninterpreted user-function body. The terms after a lambda
// are accumulated here verbatim and replayed by eval with the x, y, and z
// placeholders bound to popped arguments.
type FuncLit struct {
	Terms []string
}

func (f *FuncLit) AddTerm(t string) { f.Terms = append(f.Terms, t) }

// ArgCount reports how many arguments the body consumes, judged by the
// highest placeholder it references. A body that names z takes three
// arguments even if it never names x.
func (f *FuncLit) ArgCount() int {
	n := 0
	for _, t := range f.Terms {
		switch t {
		case "x":
			if n < 1 {
				n = 1
			}
		case "y":
			if n < 2 {
				n = 2
			}
		case "z":
			n = 3
		}
	}
	return n
}
