package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/danielcompton/peloton/catalog"
	"github.com/danielcompton/peloton/common"
	"github.com/danielcompton/peloton/exec"
	"github.com/danielcompton/peloton/expression"
	"github.com/danielcompton/peloton/storage"
)

// joinrun streams the nested loop join of two in-memory integer relations,
// joining on left < right by default. A smoke tool for eyeballing operator
// output, not part of the library contract.
type arguments struct {
	Left       []int64 `help:"Values of the single-column left relation." default:"10,20"`
	Right      []int64 `help:"Values of the single-column right relation." default:"5,15,25"`
	Op         string  `help:"Join comparison: lt, le, eq, ne, ge, gt or cross." default:"lt"`
	ColumnType string  `help:"Column type the relation values are stored as: tinyint, int, bigint or double." default:"bigint"`
	LogLevel   string  `help:"Logging level." default:"info"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err.Error())
	}
}

func run(args []string) error {
	cfg := arguments{}
	parser, err := kong.New(&cfg)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err = parser.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.WithStack(err)
	}
	log.SetLevel(level)

	predicate, err := predicateFor(cfg.Op)
	if err != nil {
		return err
	}
	columnType, err := columnTypeFor(cfg.ColumnType)
	if err != nil {
		return err
	}
	join := exec.NewNestedLoopJoin(
		exec.NewStaticTiles(singleColumnTile(columnType, cfg.Left)),
		exec.NewStaticTiles(singleColumnTile(columnType, cfg.Right)),
		predicate,
	)
	if err := join.Init(); err != nil {
		return err
	}
	rowCount := 0
	for {
		ok, err := join.Advance()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		tile := join.TakeOutput()
		fmt.Print(tile.String())
		rowCount += tile.RowCount()
	}
	log.Infof("join produced %d rows", rowCount)
	return nil
}

func predicateFor(op string) (expression.Predicate, error) {
	if op == "cross" {
		return nil, nil
	}
	ops := map[string]expression.CompareOp{
		"lt": expression.OpLT,
		"le": expression.OpLE,
		"eq": expression.OpEQ,
		"ne": expression.OpNE,
		"ge": expression.OpGE,
		"gt": expression.OpGT,
	}
	compareOp, ok := ops[op]
	if !ok {
		return nil, errors.Errorf("unknown comparison %q", op)
	}
	return expression.NewComparison(compareOp,
		expression.NewColumnExpression(expression.LeftSide, 0),
		expression.NewColumnExpression(expression.RightSide, 0),
	), nil
}

func columnTypeFor(name string) (common.ColumnType, error) {
	var t common.Type
	if err := t.Capture([]string{name}); err != nil {
		return common.UnknownColumnType, errors.WithStack(err)
	}
	switch t {
	case common.TypeTinyInt, common.TypeInt, common.TypeBigInt, common.TypeDouble:
		return common.ColumnTypesByType[t], nil
	default:
		return common.UnknownColumnType, errors.Errorf("column type %s cannot hold the integer relation values", name)
	}
}

func singleColumnTile(columnType common.ColumnType, values []int64) *storage.Tile {
	schema := catalog.NewSchema([]catalog.Column{{Name: "v", Type: columnType}})
	tile := storage.NewTile(schema, len(values))
	for _, v := range values {
		// InsertRow casts to the column's declared type, range checked.
		if _, err := tile.InsertRow(common.NewBigIntValue(v)); err != nil {
			panic(err)
		}
	}
	return tile
}
