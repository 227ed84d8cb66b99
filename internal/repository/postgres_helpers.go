package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// rowScanner は*sql.Rowと*sql.Rowsの共通部分。
type rowScanner interface {
	Scan(dest ...any) error
}

// whereBuilder はプレースホルダ番号を採番しながらWHERE句を組み立てる。
type whereBuilder struct {
	conds []string
	args  []any
}

// add はcondの中の"?"を次のプレースホルダに置き換えて条件を追加する。
// 同じ値を複数回参照する条件は"?"を複数書けば同じ番号になる。
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// copyRows はpq.CopyInでrowsをtableに一括挿入する。
// COPYはトランザクション内でしか使えないため、exは*sql.Txであること。
func copyRows(ctx context.Context, ex Executor, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := ex.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("failed to prepare copy into %s: %w", table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to copy row into %s: %w", table, err)
		}
	}

	// 引数なしのExecでバッファをフラッシュする
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush copy into %s: %w", table, err)
	}

	return nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// nullableInt はCOPY用の値を返す。nilはNULLとして送られる。
func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}
