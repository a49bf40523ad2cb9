package whatsapp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"
)

// MeowConfig configures the native whatsmeow transport. The device session is
// persisted in a sqlite store under DataDir, so pairing survives restarts.
type MeowConfig struct {
	DataDir     string
	SessionName string
}

type meowGateway struct {
	client *whatsmeow.Client
	log    waLog.Logger
}

// NewMeowGateway opens (or creates) the device store and connects. When the
// device is not yet paired, the QR code is printed to the terminal and sends
// fail with ErrNotConnected until pairing completes.
func NewMeowGateway(ctx context.Context, cfg MeowConfig, log waLog.Logger) (Gateway, func(), error) {
	if cfg.SessionName == "" {
		cfg.SessionName = "gymtrack"
	}
	container, err := newDeviceStore(ctx, cfg, log.Sub("Store"))
	if err != nil {
		return nil, nil, err
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, nil, err
	}

	client := whatsmeow.NewClient(device, log.Sub("Client"))
	g := &meowGateway{client: client, log: log}
	client.AddEventHandler(func(evt any) {
		switch e := evt.(type) {
		case *events.Connected:
			log.Infof("whatsapp session connected")
		case *events.Disconnected:
			log.Warnf("whatsapp session disconnected")
		case *events.PairSuccess:
			log.Infof("device paired successfully, JID: %s", e.ID.String())
		case *events.LoggedOut:
			log.Warnf("whatsapp session logged out: %s", e.Reason.String())
		}
	})

	if client.Store.ID == nil {
		qrChan, err := client.GetQRChannel(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Connect(); err != nil {
			return nil, nil, err
		}
		go watchQRChannel(ctx, qrChan, log)
	} else {
		if err := client.Connect(); err != nil {
			return nil, nil, err
		}
	}

	return g, client.Disconnect, nil
}

func newDeviceStore(ctx context.Context, cfg MeowConfig, log waLog.Logger) (*sqlstore.Container, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	dbPath := filepath.Join(cfg.DataDir, fmt.Sprintf("%s.db", cfg.SessionName))
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(30000)&_pragma=journal_mode(WAL)&_txlock=immediate", dbPath)
	return sqlstore.New(ctx, "sqlite", dsn, log)
}

func watchQRChannel(ctx context.Context, qrChan <-chan whatsmeow.QRChannelItem, log waLog.Logger) {
	for {
		select {
		case item, ok := <-qrChan:
			if !ok {
				return
			}
			switch item.Event {
			case "code":
				if item.Code == "" {
					continue
				}
				log.Infof("QR code refreshed (timeout %s), scan to pair", item.Timeout)
				PrintQRASCII(item.Code)
			case "success":
				log.Infof("device paired")
				return
			case "timeout":
				log.Warnf("QR code timed out; restart to pair")
				return
			case "error":
				log.Errorf("error event from QR channel")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (g *meowGateway) SendText(ctx context.Context, phone, body string) error {
	if !g.client.IsConnected() {
		return ErrNotConnected
	}
	jid := types.NewJID(phone, types.DefaultUserServer)
	msg := &waProto.Message{Conversation: proto.String(body)}
	if _, err := g.client.SendMessage(ctx, jid, msg); err != nil {
		if g.log != nil {
			g.log.Warnf("send failed to=%s err=%v", phone, err)
		}
		return err
	}
	if g.log != nil {
		g.log.Debugf("send ok to=%s", phone)
	}
	return nil
}
