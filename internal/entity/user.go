package entity

// User carries the derived progression view (total xp and level). Both fields
// are caches over the xp_logs ledger and are rewritten on every credit; the
// ledger stays the source of truth.
type User struct {
	Base
	Name    string
	TotalXP int64 `gorm:"column:total_xp"`
	Level   int
}
