package store

// Statement shapes used against the items table. The table layout is the
// only durable interface of the application.
const (
	createItemsTable = `CREATE TABLE IF NOT EXISTS items (
	id    integer primary key not null,
	done  int,
	value text
);`

	selectItemsByDone = `SELECT * FROM items WHERE done = ?;`
	selectAllItems    = `SELECT * FROM items;`
	insertItem        = `INSERT INTO items (done, value) VALUES (0, ?);`
	markItemDone      = `UPDATE items SET done = 1 WHERE id = ?;`
	deleteItem        = `DELETE FROM items WHERE id = ?;`
)
