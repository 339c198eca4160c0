package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/region"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type regionRepository struct {
	db *database.DB
}

func NewRegionRepository(db *database.DB) region.RegionRepository {
	return &regionRepository{db: db}
}

// ListAll implements region.RegionRepository.
func (r *regionRepository) ListAll(ctx context.Context) ([]region.Region, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, latitude, longitude FROM regions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer rows.Close()

	regions := make([]region.Region, 0)
	for rows.Next() {
		var rg region.Region
		if err := rows.Scan(&rg.ID, &rg.Name, &rg.Latitude, &rg.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, rg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read regions: %w", err)
	}

	return regions, nil
}
