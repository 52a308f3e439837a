package trendline

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// ColorMap assigns each topic a color from a palette, cycling when topics
// outnumber the palette. The assignment order is the topic iteration order
// and stays stable for the lifetime of one bind, so hover highlights always
// match line colors.
type ColorMap struct {
	order  []string
	colors map[string]string
}

func AssignColors(byTopic []TopicSeries, pal Palette) ColorMap {
	if len(pal) == 0 {
		pal = Category10
	}
	m := ColorMap{
		colors: make(map[string]string),
	}
	for _, ser := range byTopic {
		if _, ok := m.colors[ser.ID]; ok {
			continue
		}
		m.colors[ser.ID] = pal[len(m.order)%len(pal)]
		m.order = append(m.order, ser.ID)
	}
	return m
}

func (m ColorMap) Color(id string) string {
	return m.colors[id]
}

// Index reports the assignment rank of a topic, -1 when unknown.
func (m ColorMap) Index(id string) int {
	for i := range m.order {
		if m.order[i] == id {
			return i
		}
	}
	return -1
}

func (m ColorMap) Topics() []string {
	return append([]string(nil), m.order...)
}

func (m ColorMap) Len() int {
	return len(m.order)
}
