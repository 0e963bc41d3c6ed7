package governance

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/canopy-network/votecollector/pkg/gateway"
)

const (
	testComponent = "component_gov"
	testTCStore   = "internal_keyvaluestore_tcs"
	testPropStore = "internal_keyvaluestore_props"
)

func raw(s string) json.RawMessage { return json.RawMessage(strconv.Quote(s)) }

func u64(name string, n uint64) gateway.Value {
	return gateway.Value{Kind: "U64", FieldName: name, Raw: raw(strconv.FormatUint(n, 10))}
}

func own(name, addr string) gateway.Value {
	return gateway.Value{Kind: "Own", FieldName: name, Raw: raw(addr)}
}

func reference(name, addr string) gateway.Value {
	return gateway.Value{Kind: "Reference", FieldName: name, Raw: raw(addr)}
}

func str(name, s string) gateway.Value {
	return gateway.Value{Kind: "String", FieldName: name, Raw: raw(s)}
}

func instant(name string, secs int64) gateway.Value {
	return gateway.Value{Kind: "Tuple", FieldName: name, TypeName: "Instant", Fields: []gateway.Value{
		{Kind: "I64", FieldName: "seconds_since_unix_epoch", Raw: raw(strconv.FormatInt(secs, 10))},
	}}
}

func optionTuple(id uint64) gateway.Value {
	return gateway.Value{Kind: "Tuple", Fields: []gateway.Value{{Kind: "U32", Raw: raw(strconv.FormatUint(id, 10))}}}
}

func componentState(tcCount, propCount uint64) *gateway.Value {
	return &gateway.Value{Kind: "Tuple", Fields: []gateway.Value{
		own("temperature_checks", testTCStore),
		own("proposals", testPropStore),
		u64("temperature_check_count", tcCount),
		u64("proposal_count", propCount),
	}}
}

func entityValue(title string, voteCount uint64, votes string, start time.Time, options ...string) gateway.Value {
	v := gateway.Value{Kind: "Tuple", Fields: []gateway.Value{
		str("title", title),
		own("votes", votes),
		u64("vote_count", voteCount),
		instant("start", start.Unix()),
	}}
	if len(options) > 0 {
		arr := gateway.Value{Kind: "Array", FieldName: "vote_options", ElementKind: "Tuple"}
		for i, label := range options {
			arr.Elements = append(arr.Elements, gateway.Value{Kind: "Tuple", Fields: []gateway.Value{
				{Kind: "Tuple", FieldName: "id", Fields: []gateway.Value{{Kind: "U32", Raw: raw(strconv.Itoa(i))}}},
				str("label", label),
			}})
		}
		v.Fields = append(v.Fields, arr)
	}
	return v
}

func tcVote(voter string, forVote bool) gateway.Value {
	variant := gateway.Value{Kind: "Enum", FieldName: "vote", VariantID: "1", VariantName: OptionAgainst}
	if forVote {
		variant = gateway.Value{Kind: "Enum", FieldName: "vote", VariantID: "0", VariantName: OptionFor}
	}
	return gateway.Value{Kind: "Tuple", Fields: []gateway.Value{reference("voter", voter), variant}}
}

func proposalVote(voter string, options ...uint64) gateway.Value {
	arr := gateway.Value{Kind: "Array", ElementKind: "Tuple"}
	for _, o := range options {
		arr.Elements = append(arr.Elements, optionTuple(o))
	}
	return gateway.Value{Kind: "Tuple", Fields: []gateway.Value{reference("", voter), arr}}
}

// fakeReader serves a governance component from in-memory stores keyed by store address and key text.
type fakeReader struct {
	gateway.Reader
	state    *gateway.Value
	stores   map[string]map[string]gateway.Value
	kvsCalls int
}

func newFakeReader(state *gateway.Value) *fakeReader {
	return &fakeReader{state: state, stores: map[string]map[string]gateway.Value{}}
}

func (f *fakeReader) put(store string, key uint64, v gateway.Value) {
	if f.stores[store] == nil {
		f.stores[store] = map[string]gateway.Value{}
	}
	f.stores[store][strconv.FormatUint(key, 10)] = v
}

func (f *fakeReader) EntityDetails(_ context.Context, addresses []string, _ gateway.DetailsOpts, _ uint64) ([]gateway.EntityDetails, error) {
	out := make([]gateway.EntityDetails, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, gateway.EntityDetails{Address: a, State: f.state})
	}
	return out, nil
}

func (f *fakeReader) KeyValueStoreData(_ context.Context, store string, keys []gateway.Value, _ uint64) ([]gateway.KeyValueEntry, error) {
	f.kvsCalls++
	var out []gateway.KeyValueEntry
	for _, k := range keys {
		text, _ := k.Text()
		if v, ok := f.stores[store][text]; ok {
			out = append(out, gateway.KeyValueEntry{Key: k, Value: v})
		}
	}
	return out, nil
}
