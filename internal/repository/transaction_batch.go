package repository

import (
	"context"
	"fmt"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
)

// BatchItem es una fila validada lista para insertar; Row es su número en el archivo de origen
type BatchItem struct {
	Row         int
	Transaction *models.StockTransaction
}

// BatchFailure registra una fila cuyo INSERT falló
type BatchFailure struct {
	Row int
	Err error
}

// InsertBatch inserta las filas dentro de una transacción SQL, cada una bajo su propio SAVEPOINT.
// Una fila que falla se revierte sola y el resto continúa. Sólo se hace commit si al menos una fila entró.
func (r *TransactionRepository) InsertBatch(ctx context.Context, items []BatchItem) (int, []BatchFailure, error) {
	if len(items) == 0 {
		return 0, nil, nil
	}

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer sqlTx.Rollback()

	inserted := 0
	var failures []BatchFailure

	for i, item := range items {
		savepoint := fmt.Sprintf("import_row_%d", i)
		if _, err := sqlTx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
			return 0, nil, fmt.Errorf("error creando savepoint: %w", err)
		}

		if err := r.insert(ctx, sqlTx, item.Transaction); err != nil {
			if _, rbErr := sqlTx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				return 0, nil, fmt.Errorf("error revirtiendo fila %d: %w", item.Row, rbErr)
			}
			item.Transaction.ID = 0
			failures = append(failures, BatchFailure{Row: item.Row, Err: err})
			continue
		}

		if _, err := sqlTx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			return 0, nil, fmt.Errorf("error liberando savepoint: %w", err)
		}
		inserted++
	}

	if inserted == 0 {
		return 0, failures, nil
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, nil, err
	}
	return inserted, failures, nil
}
