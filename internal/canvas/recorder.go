package canvas

// Op is one recorded drawing call.
type Op struct {
	Kind   string  `json:"kind"`
	Points []Point `json:"points,omitempty"`
	R      float64 `json:"r,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	Text   string  `json:"text,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
	Fill   string  `json:"fill,omitempty"`
	Fade   float64 `json:"fade,omitempty"`
}

// Recorder keeps every call since the last Clear. Clears counts calls to Clear.
type Recorder struct {
	W, H   float64
	Ops    []Op
	Clears int
}

func NewRecorder() *Recorder {
	return &Recorder{W: Width, H: Height}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Clears++
}

func (r *Recorder) add(op Op, st Style) {
	if st.Stroke != nil {
		op.Stroke = Hex(st.Stroke)
	}
	if st.Fill != nil {
		op.Fill = Hex(st.Fill)
	}
	op.Fade = st.Fade
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, st Style) {
	r.add(Op{Kind: "line", Points: []Point{{x0, y0}, {x1, y1}}}, st)
}

func (r *Recorder) Polyline(pts []Point, st Style) {
	r.add(Op{Kind: "polyline", Points: append([]Point(nil), pts...)}, st)
}

func (r *Recorder) Circle(cx, cy, rad float64, st Style) {
	r.add(Op{Kind: "circle", Points: []Point{{cx, cy}}, R: rad}, st)
}

func (r *Recorder) Rect(x, y, w, h float64, st Style) {
	r.add(Op{Kind: "rect", Points: []Point{{x, y}}, W: w, H: h}, st)
}

func (r *Recorder) Text(x, y float64, s string, st Style) {
	r.add(Op{Kind: "text", Points: []Point{{x, y}}, Text: s}, st)
}

// Count returns how many recorded ops have the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every recorded text in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Discard is a surface that drops everything. It is used for headless runs.
type Discard struct{}

func (Discard) Size() (float64, float64)             { return Width, Height }
func (Discard) Clear()                               {}
func (Discard) Line(_, _, _, _ float64, _ Style)     {}
func (Discard) Polyline(_ []Point, _ Style)          {}
func (Discard) Circle(_, _, _ float64, _ Style)      {}
func (Discard) Rect(_, _, _, _ float64, _ Style)     {}
func (Discard) Text(_, _ float64, _ string, _ Style) {}
