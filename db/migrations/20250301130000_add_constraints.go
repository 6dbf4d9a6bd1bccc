package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- a line carries an amount on exactly one side
				ALTER TABLE transaction_lines
				ADD CONSTRAINT check_debit_xor_credit
				CHECK ((debit = 0) != (credit = 0));

			-- amounts are never negative, the side encodes the direction
				ALTER TABLE transaction_lines
				ADD CONSTRAINT check_amounts_not_negative
				CHECK (debit >= 0 AND credit >= 0);

			-- draft -> validated is the only lifecycle
				ALTER TABLE transactions
				ADD CONSTRAINT check_transaction_status
				CHECK (status IN ('draft', 'validated'));

				ALTER TABLE fiscal_years
				ADD CONSTRAINT check_fiscal_year_status
				CHECK (status IN ('open', 'closed'));

			-- at most one current fiscal year at a time
				CREATE UNIQUE INDEX one_current_fiscal_year
				ON fiscal_years (is_current)
				WHERE is_current;

				CREATE INDEX transactions_journal_status_idx
				ON transactions (journal_id, status);

				CREATE INDEX transaction_lines_account_idx
				ON transaction_lines (account_id);
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
