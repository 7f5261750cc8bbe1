// Package notify renders order acknowledgment letters and delivers them.
package notify

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

var letterTemplate = template.Must(template.New("acknowledgment").Parse(`<p>Dear {{.FirstName}} {{.LastName}},</p>
<p>Thank you for your order {{.OrderID}}.</p>
<table>
{{- range .Lines}}
<tr><td>{{.ProductCode}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td></tr>
{{- end}}
</table>
{{- range .Comments}}
<p>{{.}}</p>
{{- end}}
<p>Shipping: {{.ShippingMethod}} ({{.ShippingCost}})</p>
<p>Total: {{.AmountToBill}}</p>
`))

type letterLine struct {
	ProductCode string
	Quantity    string
	Price       string
}

type letterData struct {
	FirstName      string
	LastName       string
	OrderID        string
	Lines          []letterLine
	Comments       []string
	ShippingMethod string
	ShippingCost   string
	AmountToBill   string
}

// CreateAcknowledgmentLetter renders the HTML letter for a priced order.
// Customer-supplied text is escaped.
func CreateAcknowledgmentLetter(order domain.PricedOrderWithShippingMethod) domain.HtmlString {
	priced := order.PricedOrder
	data := letterData{
		FirstName:      priced.CustomerInfo.Name.FirstName.String(),
		LastName:       priced.CustomerInfo.Name.LastName.String(),
		OrderID:        priced.OrderID.String(),
		ShippingMethod: string(order.ShippingInfo.ShippingMethod),
		ShippingCost:   order.ShippingInfo.ShippingCost.String(),
		AmountToBill:   priced.AmountToBill.String(),
	}
	for _, l := range priced.Lines {
		switch l := l.(type) {
		case domain.PricedOrderProductLine:
			data.Lines = append(data.Lines, letterLine{
				ProductCode: l.ProductCode.String(),
				Quantity:    l.Quantity.Value().String(),
				Price:       l.LinePrice.String(),
			})
		case domain.CommentLine:
			data.Comments = append(data.Comments, l.Comment)
		}
	}

	var buf bytes.Buffer
	if err := letterTemplate.Execute(&buf, data); err != nil {
		slog.Error("rendering acknowledgment letter failed", "order_id", data.OrderID, "error", err)
		return domain.NewHtmlString("")
	}
	return domain.NewHtmlString(buf.String())
}
