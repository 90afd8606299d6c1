package dialect

// TiDB speaks the MySQL wire protocol and literal syntax.
type TiDB struct {
	*MySQL
}

func NewTiDBDialect() Dialect {
	return &TiDB{
		MySQL: NewMySQLDialect().(*MySQL),
	}
}

func (*TiDB) Name() string { return "tidb" }
