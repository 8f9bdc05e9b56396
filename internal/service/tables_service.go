package service

import (
	"context"

	"microboard/internal/repository"
)

type TablesService interface {
	GetCountTables(ctx context.Context) (int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) GetCountTables(ctx context.Context) (int, error) {
	return t.tablesRepo.CountTables(ctx)
}
