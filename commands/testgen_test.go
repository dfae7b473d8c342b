package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *sample) Reset()         { *m = sample{} }
func (m *sample) String() string { return proto.CompactTextString(m) }
func (*sample) ProtoMessage()    {}

func TestTestGen(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	err = TestGenCmd([]Example{{Filename: "sample", Obj: &sample{Name: "abc"}}}, []string{dir})
	require.NoError(t, err)

	js, err := ioutil.ReadFile(filepath.Join(dir, "sample.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "abc"}`, string(js))

	bin, err := ioutil.ReadFile(filepath.Join(dir, "sample.bin"))
	require.NoError(t, err)
	var got sample
	require.NoError(t, proto.Unmarshal(bin, &got))
	assert.Equal(t, "abc", got.Name)
}
