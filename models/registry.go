package models

// All lists every persisted model in dependency order, for migrations and code generation.
func All() []any {
	return []any{
		&Artist{},
		&Album{},
		&Tabber{},
		&Song{},
		&SongChangeLog{},
	}
}
