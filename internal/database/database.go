package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/config"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB envuelve la conexión junto con el dialecto SQL del driver
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Dialect resuelve las diferencias de sintaxis entre SQLite y PostgreSQL
type Dialect struct {
	Driver string
}

// Rebind convierte los placeholders '?' al formato del driver ($1, $2... en postgres)
func (d Dialect) Rebind(query string) string {
	if d.Driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Like devuelve el operador de búsqueda sin distinguir mayúsculas
func (d Dialect) Like() string {
	if d.Driver == config.DriverPostgres {
		return "ILIKE"
	}
	// LIKE en SQLite ya ignora mayúsculas para ASCII
	return "LIKE"
}

// Open abre la base de datos configurada, verifica la conexión y aplica el esquema
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	if cfg.Driver == config.DriverSQLite && !isMemoryDSN(cfg.URL) {
		// Crear el directorio de la base de datos si no existe
		if dir := filepath.Dir(cfg.URL); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("error creando directorio de la base de datos: %w", err)
			}
		}
	}

	conn, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite admite un solo escritor; una conexión también mantiene viva la base en memoria
		conn.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	db := &DB{DB: conn, Dialect: Dialect{Driver: cfg.Driver}}
	if err := db.RunMigrations(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:")
}
