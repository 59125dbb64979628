package widget

import "strconv"

// Fixed user-facing strings.
const (
	LoadingLabel = "Carregando..."
	ErrorMessage = "Ocorreu um erro ao obter as informações"
	FetchLabel   = "Obter preço"
	ClearLabel   = "Apagar"
)

// View is what the widget displays for a given state.
type View struct {
	Status       Status
	Price        string // "USD {rate}", empty while loading or on error
	UpdatedLabel string
	Loading      bool
	Error        string
}

// FormatPrice renders a rate as "USD {rate}" without trailing zeros.
func FormatPrice(rate float64) string {
	return "USD " + strconv.FormatFloat(rate, 'f', -1, 64)
}

// Render derives the display for s.
func Render(s State) View {
	s = s.Normalize()
	v := View{Status: s.Status}
	switch s.Status {
	case StatusLoading:
		v.Loading = true
	case StatusError:
		v.Error = ErrorMessage
	case StatusSuccess:
		v.Price = FormatPrice(s.Quote.RateUSD)
		v.UpdatedLabel = s.Quote.UpdatedAt
	default:
		v.Price = FormatPrice(s.Quote.RateUSD)
	}
	return v
}

// Text returns the primary text region: price, loading label or error message.
func (v View) Text() string {
	switch {
	case v.Loading:
		return LoadingLabel
	case v.Error != "":
		return v.Error
	default:
		return v.Price
	}
}
