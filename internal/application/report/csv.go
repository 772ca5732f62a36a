package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/jhoicas/medisupply-api/internal/application/dto"
)

var ordersCSVHeader = []string{
	"order_id", "status", "created_at", "delivery_date", "seller_id", "seller_name",
	"product_id", "product_name", "quantity", "price_per_unit", "order_total",
}

// ordersCSV una fila por línea de pedido.
func ordersCSV(rep *dto.OrdersReportResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ordersCSVHeader); err != nil {
		return nil, err
	}
	for _, o := range rep.Orders {
		base := []string{
			o.ID,
			o.Status,
			o.CreatedAt.UTC().Format(time.RFC3339),
			o.DeliveryDate.Format(dto.DateLayout),
			o.Seller.ID,
			o.Seller.FullName,
		}
		if len(o.Products) == 0 {
			if err := w.Write(append(base, "", "", "0", "0", o.Total.StringFixed(2))); err != nil {
				return nil, err
			}
			continue
		}
		for _, p := range o.Products {
			row := append(append([]string{}, base...),
				p.ID,
				p.Name,
				strconv.Itoa(p.Quantity),
				p.PricePerUnit.StringFixed(2),
				o.Total.StringFixed(2),
			)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
