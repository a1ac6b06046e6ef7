package synth

import (
	"strconv"
	"strings"
)

// Rewrite renders the function with its result list ending in the aggregate.
//
// The body is kept as is inside a function literal returning the success results and a plain
// error. The function calls it and converts the error:
//
//	func ReadInt(path string) (int64, ReadIntError) {
//		res0, err := func() (int64, error) {
//			...
//		}()
//		return res0, toReadIntError(err)
//	}
//
// The output is not formatted.
func Rewrite(sig Signature, agg *Aggregate) string {
	var b strings.Builder
	for _, line := range sig.Doc {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("func ")
	if sig.Recv != "" {
		b.WriteString(sig.Recv)
		b.WriteByte(' ')
	}
	b.WriteString(sig.Name)
	b.WriteString(sig.TypeParams)
	b.WriteString(sig.Params)
	b.WriteByte(' ')

	taken := make(map[string]bool, len(sig.Taken))
	for _, name := range sig.Taken {
		taken[name] = true
	}

	if len(sig.Results) == 0 {
		b.WriteString(agg.Name + " {\n")
		b.WriteString("\treturn " + agg.Converter + "(func() error " + sig.Body + "())\n")
		b.WriteString("}\n")
		return b.String()
	}

	types := make([]string, 0, len(sig.Results)+1)
	for _, r := range sig.Results {
		types = append(types, r.Type)
	}
	b.WriteString("(" + strings.Join(append(types, agg.Name), ", ") + ") {\n")

	outs := make([]string, len(sig.Results))
	for i := range sig.Results {
		outs[i] = unique("res"+strconv.Itoa(i), taken)
	}
	errName := unique("err", taken)

	b.WriteString("\t" + strings.Join(outs, ", ") + ", " + errName + " := func() " + innerResults(sig) + " ")
	b.WriteString(sig.Body)
	b.WriteString("()\n")
	b.WriteString("\treturn " + strings.Join(outs, ", ") + ", " + agg.Converter + "(" + errName + ")\n")
	b.WriteString("}\n")

	return b.String()
}

// innerResults renders the result list of the function literal wrapping the body.
// Named results keep their names, the error gets one no other name in scope has.
func innerResults(sig Signature) string {
	if !sig.named() {
		types := make([]string, 0, len(sig.Results)+1)
		for _, r := range sig.Results {
			types = append(types, r.Type)
		}
		return "(" + strings.Join(append(types, "error"), ", ") + ")"
	}

	taken := make(map[string]bool, len(sig.Taken)+len(sig.Results))
	for _, name := range sig.Taken {
		taken[name] = true
	}
	fields := make([]string, 0, len(sig.Results)+1)
	for _, r := range sig.Results {
		taken[r.Name] = true
		fields = append(fields, r.Name+" "+r.Type)
	}
	fields = append(fields, unique("err", taken)+" error")

	return "(" + strings.Join(fields, ", ") + ")"
}

// unique returns base or base followed by the smallest number not in taken, and takes it.
func unique(base string, taken map[string]bool) string {
	name := base
	for i := 1; taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	taken[name] = true

	return name
}
