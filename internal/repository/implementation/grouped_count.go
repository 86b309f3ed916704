package implementation

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type groupedCount struct {
	GroupKey uuid.UUID
	Total    int64
}

// countGrouped runs a single GROUP BY over column restricted to ids.
// Ids without rows are reported as zero.
func countGrouped(query *gorm.DB, column string, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []groupedCount
	err := query.
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}
