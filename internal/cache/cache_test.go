package cache

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/badisi/samsung-tv-remote/internal/discovery"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Errorf("DefaultPath() = %v, should end with %v", path, FileName)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    Cache
	}{
		{name: "missing file", content: nil, want: Cache{}},
		{name: "not json", content: strPtr("not-json{"), want: Cache{}},
		{name: "json array", content: strPtr(`[{"mac":"AA:BB:CC:DD:EE:FF"}]`), want: Cache{}},
		{name: "json null", content: strPtr("null"), want: Cache{}},
		{name: "json string", content: strPtr(`"hello"`), want: Cache{}},
		{name: "empty object", content: strPtr("{}"), want: Cache{}},
		{
			name:    "valid cache",
			content: strPtr(`{"AA:BB:CC:DD:EE:FF":{"friendlyName":"TV","ip":"10.0.0.5","mac":"AA:BB:CC:DD:EE:FF"}}`),
			want: Cache{
				"AA:BB:CC:DD:EE:FF": {FriendlyName: "TV", IP: "10.0.0.5", MAC: "AA:BB:CC:DD:EE:FF"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got := Load(path)
			if got == nil {
				t.Fatal("Load() returned nil, want empty cache")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_CanonicalizesMAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	legacy := `{"f4:7d:ef:12:34:56":{"friendlyName":"Old","ip":"10.0.0.5","mac":"f4:7d:ef:12:34:56"}}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	loaded := Load(path)
	want := Cache{
		"F4:7D:EF:12:34:56": {FriendlyName: "Old", IP: "10.0.0.5", MAC: "F4:7D:EF:12:34:56"},
	}
	if !reflect.DeepEqual(loaded, want) {
		t.Fatalf("Load() = %v, want %v", loaded, want)
	}

	merged, err := Refresh(path, []discovery.Device{
		{FriendlyName: "New", IP: "10.0.0.6", MAC: "F4:7D:EF:12:34:56"},
	})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("Refresh() = %v, want a single entry", merged)
	}
	if got := merged["F4:7D:EF:12:34:56"].FriendlyName; got != "New" {
		t.Errorf("FriendlyName = %q, want New", got)
	}

	if !merged.Remove("f4:7d:ef:12:34:56") {
		t.Error("Remove() with the lower-case MAC should find the entry")
	}
	if len(merged) != 0 {
		t.Errorf("len(cache) = %d after Remove, want 0", len(merged))
	}
}

func TestLoad_Directory(t *testing.T) {
	if got := Load(t.TempDir()); len(got) != 0 {
		t.Errorf("Load(directory) = %v, want empty cache", got)
	}
}

func TestMerge_Overwrite(t *testing.T) {
	existing := Cache{
		"A": {FriendlyName: "Old name", IP: "1", MAC: "A"},
	}

	got := existing.Merge([]discovery.Device{{MAC: "A", IP: "2"}})

	want := Cache{"A": {MAC: "A", IP: "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %v, want %v (no field blending)", got, want)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	fresh := []discovery.Device{
		{FriendlyName: "Kitchen", IP: "10.0.0.2", MAC: "AA:AA:AA:AA:AA:AA"},
		{FriendlyName: "Den", IP: "10.0.0.3", MAC: "BB:BB:BB:BB:BB:BB"},
	}

	once := Cache{"CC:CC:CC:CC:CC:CC": {MAC: "CC:CC:CC:CC:CC:CC"}}.Merge(fresh)
	twice := Cache{"CC:CC:CC:CC:CC:CC": {MAC: "CC:CC:CC:CC:CC:CC"}}.Merge(fresh).Merge(fresh)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Merge() twice = %v, want %v", twice, once)
	}
	if len(once) != 3 {
		t.Errorf("Merge() has %d entries, want 3", len(once))
	}
}

func TestMerge_LaterEntryWins(t *testing.T) {
	got := Cache{}.Merge([]discovery.Device{
		{MAC: "A", IP: "1"},
		{MAC: "A", IP: "2"},
	})

	if got["A"].IP != "2" {
		t.Errorf("Merge() kept IP %v, want 2", got["A"].IP)
	}
}

func TestMerge_UnknownMACCollapses(t *testing.T) {
	got := Cache{}.Merge([]discovery.Device{
		{MAC: discovery.UnknownMAC, IP: "10.0.0.2"},
		{MAC: discovery.UnknownMAC, IP: "10.0.0.3"},
	})

	if len(got) != 1 {
		t.Errorf("Merge() has %d entries, want 1", len(got))
	}
}

func TestMerge_NilCache(t *testing.T) {
	var c Cache
	got := c.Merge([]discovery.Device{{MAC: "A"}})
	if len(got) != 1 {
		t.Errorf("Merge() on nil cache has %d entries, want 1", len(got))
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	c := Cache{
		"AA:BB:CC:DD:EE:FF": {FriendlyName: "[TV] Living Room", IP: "192.168.1.20", MAC: "AA:BB:CC:DD:EE:FF"},
	}

	if err := c.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	if !strings.Contains(string(data), `"friendlyName": "[TV] Living Room"`) {
		t.Errorf("cache file has unexpected content:\n%s", data)
	}

	if got := Load(path); !reflect.DeepEqual(got, c) {
		t.Errorf("Load() = %v, want %v", got, c)
	}
}

func TestSave_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Cache{}.Save(filepath.Join(blocker, FileName))
	if err == nil {
		t.Error("Save() should fail when the directory cannot be created")
	}
}

func TestValues(t *testing.T) {
	c := Cache{
		"BB:BB:BB:BB:BB:BB": {MAC: "BB:BB:BB:BB:BB:BB"},
		"AA:AA:AA:AA:AA:AA": {MAC: "AA:AA:AA:AA:AA:AA"},
	}

	values := c.Values()
	if len(values) != 2 {
		t.Fatalf("Values() returned %d devices, want 2", len(values))
	}
	if values[0].MAC != "AA:AA:AA:AA:AA:AA" {
		t.Errorf("Values()[0] = %v, want AA:AA:AA:AA:AA:AA", values[0].MAC)
	}
	if len(Cache{}.Values()) != 0 {
		t.Error("Values() of an empty cache should be empty")
	}
}

// A missing cache, one SSDP reply with an unreachable LOCATION: the cache
// ends up with a single entry named after the reply's source IP.
func TestRefresh_EndToEnd(t *testing.T) {
	responder, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("failed to start responder: %v", err)
	}
	defer responder.Close()

	go func() {
		buf := make([]byte, 2048)
		_, from, err := responder.ReadFromUDP(buf)
		if err != nil {
			return
		}
		reply := "HTTP/1.1 200 OK\r\n" +
			"SERVER: Samsung UPnP SDK/1.0\r\n" +
			"LOCATION: http://127.0.0.1:1/dmr\r\n" +
			"WAKEUP: MAC=AA:BB:CC:DD:EE:FF;Timeout=10\r\n\r\n"
		_, _ = responder.WriteToUDP([]byte(reply), from)
	}()

	prober := discovery.NewProber()
	prober.Target = responder.LocalAddr().(*net.UDPAddr)
	prober.Resolver.HTTPClient.Timeout = time.Second

	devices := prober.Discover(context.Background(), 5*time.Second)

	path := filepath.Join(t.TempDir(), FileName)
	got, err := Refresh(path, devices)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	want := Cache{
		"AA:BB:CC:DD:EE:FF": {FriendlyName: "127.0.0.1", IP: "127.0.0.1", MAC: "AA:BB:CC:DD:EE:FF"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Refresh() = %v, want %v", got, want)
	}
	if reloaded := Load(path); !reflect.DeepEqual(reloaded, want) {
		t.Errorf("Load() after Refresh() = %v, want %v", reloaded, want)
	}
}

func strPtr(s string) *string {
	return &s
}

func TestRemove(t *testing.T) {
	c := Cache{
		"AA:BB:CC:DD:EE:FF": {FriendlyName: "TV", IP: "10.0.0.2", MAC: "AA:BB:CC:DD:EE:FF"},
	}

	if c.Remove("11:22:33:44:55:66") {
		t.Error("Remove() of an unknown MAC should report false")
	}
	if !c.Remove("aa-bb-cc-dd-ee-ff") {
		t.Error("Remove() should normalize the MAC")
	}
	if len(c) != 0 {
		t.Errorf("len(cache) = %d after Remove, want 0", len(c))
	}
}
