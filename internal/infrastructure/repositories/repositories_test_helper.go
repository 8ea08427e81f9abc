package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createCompanyWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE company_wallets (
		id TEXT PRIMARY KEY,
		currency TEXT UNIQUE NOT NULL,
		address TEXT NOT NULL,
		wallet_name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPaymentTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_payment_tracking (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		payment_request_id TEXT NOT NULL,
		company_wallet_id TEXT NOT NULL,
		currency TEXT NOT NULL,
		requested_amount TEXT NOT NULL,
		crypto_amount TEXT NOT NULL,
		company_address TEXT NOT NULL,
		user_reference TEXT NOT NULL,
		status TEXT NOT NULL,
		tx_hash TEXT,
		confirmations INTEGER,
		expires_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payment_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		currency TEXT NOT NULL,
		requested_amount TEXT NOT NULL,
		crypto_address TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		kyc_status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createInvestmentTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE investment_plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		roi_percentage TEXT NOT NULL,
		frequency TEXT NOT NULL,
		min_amount TEXT NOT NULL,
		max_amount TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE investments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		plan_name TEXT NOT NULL,
		amount TEXT NOT NULL,
		roi_percentage TEXT NOT NULL,
		frequency TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLedgerTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		method TEXT NOT NULL,
		reference TEXT UNIQUE NOT NULL,
		description TEXT,
		status TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_balances (
		user_id TEXT PRIMARY KEY,
		total_balance TEXT NOT NULL DEFAULT '0',
		total_invested TEXT NOT NULL DEFAULT '0',
		total_profit TEXT NOT NULL DEFAULT '0',
		total_withdrawals TEXT NOT NULL DEFAULT '0',
		active_investments INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE withdrawal_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		method TEXT NOT NULL,
		account_details TEXT NOT NULL,
		status TEXT NOT NULL,
		processed_at DATETIME,
		created_at DATETIME
	);`)
}
