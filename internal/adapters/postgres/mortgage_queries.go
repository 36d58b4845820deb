package postgres

import (
	"fmt"
	"strings"

	"marketplace-service/internal/core/domain"
)

const mortgagesTable = "mortgages"

// existsActiveMortgageOf - подзапрос для EXISTS: у ассета (внешний алиас)
// есть действующий залог, взятый заемщиком $argID. Только существование,
// никаких широких JOIN - иначе размножатся строки ассетов.
// Предикатом активности владеет сущность залога (ActiveMortgageStatuses).
func existsActiveMortgageOf(assetAlias string, argID int) string {
	statuses := domain.ActiveMortgageStatuses()
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = "'" + s + "'"
	}

	return fmt.Sprintf(
		"SELECT 1 FROM %s AS m WHERE m.asset_id = %s.id AND m.borrower = $%d AND m.status = ANY(ARRAY[%s])",
		mortgagesTable, assetAlias, argID, strings.Join(quoted, ", "),
	)
}
