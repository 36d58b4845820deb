package postgres

import (
	"fmt"
	"strings"

	"marketplace-service/internal/core/domain"
)

// Фрагменты запросов вокруг публикаций. Каждый билдер чистый: он только
// собирает текст и аргументы, ничего не исполняя. В текст попадают
// исключительно имена таблиц/колонок из закрытых конфигураций и значения
// констант-перечислений; все внешние значения уходят через $n.

const publicationsTable = "publications"

// latestPublicationJSON - скалярный подзапрос, декорирующий строку ассета
// его последней публикацией в виде JSON (или NULL, если публикаций нет).
// Ровно одна строка гарантирована инвариантом is_latest, LIMIT 1 страхует
// чтение на случай гонки с писателем.
func latestPublicationJSON(assetAlias string) string {
	return fmt.Sprintf(
		"SELECT row_to_json(pub.*) FROM %s AS pub WHERE pub.asset_id = %s.id AND pub.is_latest = TRUE LIMIT 1",
		publicationsTable, assetAlias,
	)
}

// publicationsByStatus - подзапрос-отношение публикаций в заданном статусе,
// используется как цель JOIN. Статус уходит параметром $argID.
func publicationsByStatus(argID int) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE status = $%d", publicationsTable, argID)
}

// queryBuilder накапливает условия WHERE с позиционными аргументами.
type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{argID: 1}
}

// bind добавляет условие с одним параметром. Шаблон условия должен
// содержать один %d под номер аргумента.
func (qb *queryBuilder) bind(condition string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

// static добавляет условие без параметров (только константы перечислений).
func (qb *queryBuilder) static(condition string) {
	qb.conditions = append(qb.conditions, condition)
}

// nextArgID - номер, который получит следующий привязанный аргумент.
func (qb *queryBuilder) nextArgID() int {
	return qb.argID
}

func (qb *queryBuilder) where() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// whereIsActive - предикат "публикация действующая" в части, проверяемой
// базой: подтвержденная транзакция и актуальный latest-флаг.
// Истечение срока сюда сознательно не входит - его проверяет прикладной
// код с инжектируемыми часами.
func (qb *queryBuilder) whereIsActive(pubAlias string) {
	qb.static(fmt.Sprintf("%s.tx_status = '%s'", pubAlias, domain.TxConfirmed))
	qb.static(fmt.Sprintf("%s.is_latest = TRUE", pubAlias))
}

// whereHasStatus - фильтр по статусу публикации. nil означает
// "без фильтра": условие не добавляется вовсе.
func (qb *queryBuilder) whereHasStatus(pubAlias string, status *domain.PublicationStatus) {
	if status == nil {
		return
	}
	qb.bind(pubAlias+".status = $%d", string(*status))
}

// prefixColumns превращает список колонок в "alias.col, alias.col, ...".
func prefixColumns(alias string, columns []string) string {
	prefixed := make([]string, len(columns))
	for i, c := range columns {
		prefixed[i] = alias + "." + c
	}
	return strings.Join(prefixed, ", ")
}
