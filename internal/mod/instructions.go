package mod

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"
	"github.com/sourceplane/chasm/internal/model"
)

// AddInt adds a fixed integer to one field of every record
type AddInt struct {
	Adder int64
	Key   string
}

func newAddInt(args Args) (Instruction, error) {
	adder, _ := args.Int("adder")
	return &AddInt{Adder: adder, Key: args.String("key", "")}, nil
}

func (a *AddInt) Name() string { return "addint" }

func (a *AddInt) Apply(data model.Dataset, _ RandSource) (model.Dataset, error) {
	// Check every record first so a failure leaves the dataset untouched
	sums := make([]interface{}, len(data))
	for i, rec := range data {
		v, ok := rec.Get(a.Key)
		if !ok {
			return data, fmt.Errorf("record %d: %w: %s", i, model.ErrMissingKey, a.Key)
		}
		sum, err := addNumber(v, a.Adder)
		if err != nil {
			return data, fmt.Errorf("record %d: field %s: %w", i, a.Key, err)
		}
		sums[i] = sum
	}
	for i, rec := range data {
		rec.Set(a.Key, sums[i])
	}
	return data, nil
}

func addNumber(v interface{}, adder int64) (interface{}, error) {
	switch n := v.(type) {
	case int64:
		if (adder > 0 && n > math.MaxInt64-adder) || (adder < 0 && n < math.MinInt64-adder) {
			return nil, fmt.Errorf("%w: %d + %d overflows", model.ErrTypeMismatch, n, adder)
		}
		return n + adder, nil
	case float64:
		return decimal.NewFromFloat(n).Add(decimal.NewFromInt(adder)).InexactFloat64(), nil
	}
	return nil, fmt.Errorf("%w: %T is not numeric", model.ErrTypeMismatch, v)
}

// AppendRandInt appends labelled records holding random integers
type AppendRandInt struct {
	Num     int64
	Low     int64
	High    int64
	XKey    string
	YKey    string
	XPrefix string
}

func newAppendRandInt(args Args) (Instruction, error) {
	num, _ := args.Int("num")
	low, _ := args.Int("low")
	high, _ := args.Int("high")
	if err := checkBounds(low, high); err != nil {
		return nil, err
	}
	return &AppendRandInt{
		Num:     num,
		Low:     low,
		High:    high,
		XKey:    args.String("xkey", "x0"),
		YKey:    args.String("ykey", "y0"),
		XPrefix: args.String("xprefix", "Value"),
	}, nil
}

func (a *AppendRandInt) Name() string { return "appendrandint" }

func (a *AppendRandInt) Apply(data model.Dataset, rng RandSource) (model.Dataset, error) {
	for i := int64(1); i <= a.Num; i++ {
		rec := &model.Record{}
		rec.Set(a.XKey, fmt.Sprintf("%s %d", a.XPrefix, i))
		rec.Set(a.YKey, uniform(rng, a.Low, a.High))
		data = append(data, rec)
	}
	return data, nil
}

// InjectRandInt overwrites one field of every record with a random integer
type InjectRandInt struct {
	Low  int64
	High int64
	YKey string
}

func newInjectRandInt(args Args) (Instruction, error) {
	low, _ := args.Int("low")
	high, _ := args.Int("high")
	if err := checkBounds(low, high); err != nil {
		return nil, err
	}
	return &InjectRandInt{Low: low, High: high, YKey: args.String("ykey", "")}, nil
}

func (a *InjectRandInt) Name() string { return "injectrandint" }

func (a *InjectRandInt) Apply(data model.Dataset, rng RandSource) (model.Dataset, error) {
	for _, rec := range data {
		rec.Set(a.YKey, uniform(rng, a.Low, a.High))
	}
	return data, nil
}

// Noop leaves the dataset unchanged
type Noop struct {
	// Requested holds the instruction name a lenient load replaced
	Requested string
}

func newNoop(Args) (Instruction, error) {
	return &Noop{}, nil
}

func (n *Noop) Name() string { return "noop" }

func (n *Noop) Apply(data model.Dataset, _ RandSource) (model.Dataset, error) {
	return data, nil
}

// Compute sets a field of every record to an expression over its fields
type Compute struct {
	Key     string
	Expr    string
	program *vm.Program
}

func newCompute(args Args) (Instruction, error) {
	source := args.String("expr", "")
	program, err := expr.Compile(source, expr.Env(map[string]interface{}{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: expr: %v", model.ErrSchemaValidation, err)
	}
	return &Compute{Key: args.String("key", ""), Expr: source, program: program}, nil
}

func (c *Compute) Name() string { return "compute" }

func (c *Compute) Apply(data model.Dataset, _ RandSource) (model.Dataset, error) {
	results := make([]interface{}, len(data))
	for i, rec := range data {
		out, err := expr.Run(c.program, rec.Map())
		if err != nil {
			return data, fmt.Errorf("record %d: %w: %v", i, model.ErrTypeMismatch, err)
		}
		value, err := model.NormalizeScalar(out)
		if err != nil {
			return data, fmt.Errorf("record %d: %s: %w", i, c.Expr, err)
		}
		results[i] = value
	}
	for i, rec := range data {
		rec.Set(c.Key, results[i])
	}
	return data, nil
}

func checkBounds(low, high int64) error {
	if low > high {
		return fmt.Errorf("%w: low (%d) must not exceed high (%d)", model.ErrSchemaValidation, low, high)
	}
	if high-low < 0 || high-low == math.MaxInt64 {
		return fmt.Errorf("%w: range [%d, %d] is too wide", model.ErrSchemaValidation, low, high)
	}
	return nil
}
