package replay

import (
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/banshee-data/velocity.report/internal/sim/frameio"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

// PcapFrameSource decodes a recorded packet capture into a random-access
// frameio.FrameSource, treating each UDP payload on udpPort as one frame
// record. Uses pcapgo's pure-Go reader rather than libpcap, so reading a
// capture has no cgo dependency.
type PcapFrameSource struct {
	frames []*frameio.Frame
}

// OpenPcapFrameSource reads every packet in path, decoding the UDP
// payload of each packet addressed to udpPort as a frame record.
func OpenPcapFrameSource(path string, udpPort uint16) (*PcapFrameSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &simerr.IoError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	reader, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, &simerr.IoError{Op: "parse pcap header", Path: path, Err: err}
	}

	src := &PcapFrameSource{}
	for {
		data, _, err := reader.ReadPacketData()
		if err != nil {
			break // end of file or unrecoverable read error
		}

		packet := gopacket.NewPacket(data, reader.LinkType(), gopacket.DecodeOptions{Lazy: true, NoCopy: true})
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok || uint16(udp.DstPort) != udpPort || len(udp.Payload) == 0 {
			continue
		}

		frame, err := frameio.DecodeFrame(udp.Payload, path)
		if err != nil {
			continue // skip malformed packets rather than aborting the whole capture
		}
		src.frames = append(src.frames, frame)
	}

	return src, nil
}

// Count returns the number of decoded frames.
func (s *PcapFrameSource) Count() int { return len(s.frames) }

// Load returns the frame at index.
func (s *PcapFrameSource) Load(index int) (*frameio.Frame, error) {
	if index < 0 || index >= len(s.frames) {
		return nil, &simerr.ConfigurationError{Msg: "pcap frame index out of range"}
	}
	return s.frames[index], nil
}
