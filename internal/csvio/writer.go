package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Encode writes the final balance snapshot, one record per client in
// ascending client order.
func Encode(w io.Writer, accounts map[models.ClientID]models.Account) error {
	clients := make([]models.ClientID, 0, len(accounts))
	for client := range accounts {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i] < clients[j] })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, client := range clients {
		acct := accounts[client]
		record := []string{
			strconv.FormatUint(uint64(client), 10),
			formatAmount(acct.Available),
			formatAmount(acct.Held),
			formatAmount(acct.Total()),
			strconv.FormatBool(acct.Locked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatAmount renders a decimal with trailing fractional zeros stripped,
// so 1.5000 prints as 1.5 and 3.0000 as 3.
func formatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
