package replay

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

func writeTestCapture(t *testing.T, path string, udpPort uint16, payload []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}

	eth := layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 2},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IPv4(10, 0, 0, 1),
		DstIP:    net.IPv4(10, 0, 0, 2),
	}
	udp := layers.UDP{
		SrcPort: 40000,
		DstPort: layers.UDPPort(udpPort),
	}
	if err := udp.SetNetworkLayerForChecksum(&ip); err != nil {
		t.Fatalf("SetNetworkLayerForChecksum: %v", err)
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &ip, &udp, gopacket.Payload(payload)); err != nil {
		t.Fatalf("SerializeLayers: %v", err)
	}

	ci := gopacket.CaptureInfo{Timestamp: time.Unix(0, 0), CaptureLength: len(buf.Bytes()), Length: len(buf.Bytes())}
	if err := w.WritePacket(ci, buf.Bytes()); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}
}

func TestOpenPcapFrameSourceDecodesMatchingPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.pcap")
	writeTestCapture(t, path, 9000, []byte(`{"timestamp": 3, "cloud": [[1,2,3]]}`))

	src, err := OpenPcapFrameSource(path, 9000)
	if err != nil {
		t.Fatalf("OpenPcapFrameSource: %v", err)
	}
	if src.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", src.Count())
	}
	frame, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load(0): %v", err)
	}
	if frame.Timestamp != 3 || frame.Cloud.Len() != 1 {
		t.Errorf("frame = %+v, want timestamp 3 with 1 point", frame)
	}
}

func TestOpenPcapFrameSourceIgnoresOtherPorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.pcap")
	writeTestCapture(t, path, 9001, []byte(`{"timestamp": 1, "cloud": []}`))

	src, err := OpenPcapFrameSource(path, 9000)
	if err != nil {
		t.Fatalf("OpenPcapFrameSource: %v", err)
	}
	if src.Count() != 0 {
		t.Errorf("Count() = %d, want 0 for a capture with no matching-port packets", src.Count())
	}
}
