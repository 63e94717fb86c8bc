package models

import "fmt"

// FlavorMain is the top-level taste category a customer picks first
type FlavorMain string

const (
	FlavorBrightFresh   FlavorMain = "A"
	FlavorSweetBalanced FlavorMain = "B"
	FlavorBoldSmooth    FlavorMain = "C"
)

// FlavorSub is an aroma profile nested under exactly one FlavorMain
type FlavorSub string

const (
	SubLemonOrange       FlavorSub = "1"
	SubNectarinePeach    FlavorSub = "2"
	SubBerryBergamot     FlavorSub = "3"
	SubTropicalChocolate FlavorSub = "4"
	SubFloralBlackTea    FlavorSub = "5"
	SubRipeMango         FlavorSub = "6"
)

// Bean is the coffee origin used for brewing
type Bean string

const (
	BeanEthiopia   Bean = "ETH"
	BeanMaeChanTai Bean = "MCT"
)

// Recipe is the target brew strength (TDS)
type Recipe string

const (
	RecipeLightBody Recipe = "50"
	RecipeBalanced  Recipe = "60"
	RecipeFullBody  Recipe = "70"
)

var flavorMainLabels = map[FlavorMain]string{
	FlavorBrightFresh:   "เปรี้ยวสดชื่น (Bright & Fresh 🍋)",
	FlavorSweetBalanced: "หวานอมเปรี้ยว (Sweet & Balanced 🍑)",
	FlavorBoldSmooth:    "ขมกลมกล่อม (Bold & Smooth 🍫)",
}

var flavorSubLabels = map[FlavorSub]string{
	SubLemonOrange:       "เลมอน / ส้ม (Lemon / Orange)",
	SubNectarinePeach:    "เนคทารีน / พีช (Nectarine / Peach)",
	SubBerryBergamot:     "มิกซ์เบอร์รี / เบอร์กามอท (Mixed Berry / Bergamot)",
	SubTropicalChocolate: "ทรอปิคอล ฟรุต / ช็อกโกแลต (Tropical / Chocolate)",
	SubFloralBlackTea:    "ดอกไม้ / แบล็คที (Floral / Black Tea)",
	SubRipeMango:         "มะม่วงสุก (Ripe Mango)",
}

var beanLabels = map[Bean]string{
	BeanEthiopia:   "เอธิโอเปีย (Ethiopia)",
	BeanMaeChanTai: "แม่จันใต้ (Mae Chan Tai, TH)",
}

var recipeLabels = map[Recipe]string{
	RecipeLightBody: "TDS 50 – เบา (Light Body)",
	RecipeBalanced:  "TDS 60 – สมดุล (Balanced)",
	RecipeFullBody:  "TDS 70 – เข้ม (Full Body)",
}

// flavorMainOrder is the display order of the main menu
var flavorMainOrder = []FlavorMain{FlavorBrightFresh, FlavorSweetBalanced, FlavorBoldSmooth}

// flavorTree maps every main to its subs in display order
var flavorTree = map[FlavorMain][]FlavorSub{
	FlavorBrightFresh:   {SubLemonOrange, SubTropicalChocolate},
	FlavorSweetBalanced: {SubNectarinePeach, SubFloralBlackTea},
	FlavorBoldSmooth:    {SubBerryBergamot, SubRipeMango},
}

// subParent is the inverse of flavorTree, built once at init
var subParent = func() map[FlavorSub]FlavorMain {
	parents := make(map[FlavorSub]FlavorMain, len(flavorSubLabels))
	for main, subs := range flavorTree {
		for _, sub := range subs {
			if existing, ok := parents[sub]; ok {
				panic(fmt.Sprintf("flavor sub %q listed under both %q and %q", sub, existing, main))
			}
			parents[sub] = main
		}
	}
	if len(parents) != len(flavorSubLabels) {
		panic("every flavor sub must belong to exactly one flavor main")
	}
	return parents
}()

// CodeError is returned when a raw code does not name a known taxonomy entry
type CodeError struct {
	Code    string
	Kind    string
	Value   string
	Message string
}

func (e *CodeError) Error() string {
	return e.Message
}

func newCodeError(kind, value string) *CodeError {
	return &CodeError{
		Code:    "INVALID_CODE",
		Kind:    kind,
		Value:   value,
		Message: fmt.Sprintf("unknown %s code %q", kind, value),
	}
}

// FlavorMains returns every flavor main in display order
func FlavorMains() []FlavorMain {
	mains := make([]FlavorMain, len(flavorMainOrder))
	copy(mains, flavorMainOrder)
	return mains
}

// ParseFlavorMain converts a raw code into a FlavorMain
func ParseFlavorMain(code string) (FlavorMain, error) {
	m := FlavorMain(code)
	if !m.Valid() {
		return "", newCodeError("flavor main", code)
	}
	return m, nil
}

// Valid reports whether m is a known flavor main
func (m FlavorMain) Valid() bool {
	_, ok := flavorMainLabels[m]
	return ok
}

// Label returns the display label
func (m FlavorMain) Label() string {
	return flavorMainLabels[m]
}

// Subs returns the aroma profiles under m in display order
func (m FlavorMain) Subs() []FlavorSub {
	subs := make([]FlavorSub, len(flavorTree[m]))
	copy(subs, flavorTree[m])
	return subs
}

// HasSub reports whether sub is scoped under m
func (m FlavorMain) HasSub(sub FlavorSub) bool {
	parent, ok := subParent[sub]
	return ok && parent == m
}

// ParseFlavorSub converts a raw code into a FlavorSub
func ParseFlavorSub(code string) (FlavorSub, error) {
	s := FlavorSub(code)
	if !s.Valid() {
		return "", newCodeError("flavor sub", code)
	}
	return s, nil
}

// Valid reports whether s is a known flavor sub
func (s FlavorSub) Valid() bool {
	_, ok := flavorSubLabels[s]
	return ok
}

// Label returns the display label
func (s FlavorSub) Label() string {
	return flavorSubLabels[s]
}

// Main returns the parent flavor main
func (s FlavorSub) Main() FlavorMain {
	return subParent[s]
}

// ParseBean converts a raw code into a Bean
func ParseBean(code string) (Bean, error) {
	b := Bean(code)
	if !b.Valid() {
		return "", newCodeError("bean", code)
	}
	return b, nil
}

// Valid reports whether b is a known bean
func (b Bean) Valid() bool {
	_, ok := beanLabels[b]
	return ok
}

// Label returns the display label
func (b Bean) Label() string {
	return beanLabels[b]
}

// ParseRecipe converts a raw code into a Recipe
func ParseRecipe(code string) (Recipe, error) {
	r := Recipe(code)
	if !r.Valid() {
		return "", newCodeError("recipe", code)
	}
	return r, nil
}

// Valid reports whether r is a known recipe
func (r Recipe) Valid() bool {
	_, ok := recipeLabels[r]
	return ok
}

// Label returns the display label
func (r Recipe) Label() string {
	return recipeLabels[r]
}
