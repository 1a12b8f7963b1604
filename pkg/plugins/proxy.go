// Package plugins talks to out-of-process plugins over gRPC. A plugin
// occupies a slot, a fixed extension point in the pipeline; the engine sends
// the slot's data to the plugin and uses whatever comes back in its place.
//
// Every outbound call runs on its own single-use context with a fixed
// deadline and blocks the calling goroutine until the reply arrives or the
// deadline passes. The proxy is not reentrant and never retries; failures
// surface as typed errors.
package plugins

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// SlotID names an extension point a plugin can occupy.
type SlotID string

const (
	SlotSimplify    SlotID = "simplify"
	SlotPostprocess SlotID = "postprocess"
)

// DefaultTimeout bounds each plugin call.
const DefaultTimeout = 500 * time.Millisecond

const (
	handshakeMethod = "/cura.plugins.slots.handshake.v0.HandshakeService/Call"
	simplifyMethod  = "/cura.plugins.slots.simplify.v0.SimplifyModifyService/Call"
)

type handshakeRequest struct {
	SlotID        SlotID `json:"slot_id"`
	VersionRange  string `json:"version_range"`
	EngineUUID    string `json:"engine_uuid"`
	EngineVersion string `json:"engine_version"`
}

type handshakeResponse struct {
	PluginName    string `json:"plugin_name"`
	PluginVersion string `json:"plugin_version"`
	SlotVersion   string `json:"slot_version"`
}

// Proxy is a client for one plugin slot.
type Proxy struct {
	conn       *grpc.ClientConn
	slot       SlotID
	accepted   string // accepted slot version range, e.g. "v0"
	engineUUID string
	plugin     handshakeResponse
	// Timeout is the per-call deadline. Change it before the first call.
	Timeout time.Duration
}

// New connects to the plugin at target, performs the handshake and validates
// the advertised slot version. The accepted version range is matched on the
// major version, e.g. "v0" accepts "v0.2.1".
func New(target string, slot SlotID, accepted string) (*Proxy, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		return nil, err
	}
	p := &Proxy{
		conn:       conn,
		slot:       slot,
		accepted:   accepted,
		engineUUID: uuid.NewString(),
		Timeout:    DefaultTimeout,
	}
	if err := p.handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	log.Printf("using plugin %s-%s at %s for slot %s",
		p.plugin.PluginName, p.plugin.PluginVersion, target, slot)
	return p, nil
}

func (p *Proxy) handshake() error {
	var rsp handshakeResponse
	err := p.call(handshakeMethod, handshakeRequest{
		SlotID:       p.slot,
		VersionRange: p.accepted,
	}, &rsp)
	if err != nil {
		return err
	}
	if !versionAccepted(p.accepted, rsp.SlotVersion) {
		return &ValidatorError{
			Slot:     p.slot,
			Plugin:   rsp.PluginName,
			Version:  rsp.SlotVersion,
			Accepted: p.accepted,
		}
	}
	p.plugin = rsp
	return nil
}

// call issues exactly one unary request on a fresh deadline-bounded context
// and blocks until it completes.
func (p *Proxy) call(method string, req, rsp any) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, "cura-engine-uuid", p.engineUUID)
	if err := p.conn.Invoke(ctx, method, req, rsp); err != nil {
		st, _ := status.FromError(err)
		return &RemoteError{
			Slot:    p.slot,
			Plugin:  p.plugin.PluginName,
			Code:    st.Code(),
			Message: st.Message(),
		}
	}
	return nil
}

// Close tears down the connection to the plugin.
func (p *Proxy) Close() error {
	return p.conn.Close()
}

// Plugin returns the name and version the plugin reported in the handshake.
func (p *Proxy) Plugin() (name, version string) {
	return p.plugin.PluginName, p.plugin.PluginVersion
}

type simplifyRequest struct {
	Polygons      [][]geometry.Point `json:"polygons"`
	MaxResolution geometry.Coord     `json:"max_resolution"`
	MaxDeviation  geometry.Coord     `json:"max_deviation"`
}

type simplifyResponse struct {
	Polygons [][]geometry.Point `json:"polygons"`
}

// Simplify sends the polygons to a plugin occupying the simplify slot and
// returns the plugin's replacements.
func (p *Proxy) Simplify(polygons []geometry.Polygon, maxResolution, maxDeviation geometry.Coord) ([]geometry.Polygon, error) {
	req := simplifyRequest{
		Polygons:      make([][]geometry.Point, len(polygons)),
		MaxResolution: maxResolution,
		MaxDeviation:  maxDeviation,
	}
	for i, polygon := range polygons {
		req.Polygons[i] = polygon
	}
	var rsp simplifyResponse
	if err := p.call(simplifyMethod, req, &rsp); err != nil {
		return nil, err
	}
	out := make([]geometry.Polygon, len(rsp.Polygons))
	for i, polygon := range rsp.Polygons {
		out[i] = polygon
	}
	return out, nil
}

// versionAccepted matches the advertised version against the accepted range
// on the major version: "v0" accepts "v0" and "v0.x.y".
func versionAccepted(accepted, version string) bool {
	if accepted == "" || version == accepted {
		return true
	}
	return strings.HasPrefix(version, accepted+".")
}
