// Package remote sends key presses to Samsung Smart TVs.
//
// Recent Samsung TVs expose a websocket channel on port 8002 (TLS) or 8001
// (plain). A client connects to
//
//	/api/v2/channels/samsung.remote.control?name=<base64 name>&token=<token>
//
// and waits for an "ms.channel.connect" event. The first connection from a
// new remote makes the TV ask the user for permission; once accepted, the TV
// issues a token that skips the prompt on later connections. A denied request
// arrives as "ms.channel.unauthorized".
//
// Keys are sent as "ms.remote.control" Click commands carrying a key code such
// as KEY_VOLUP. Powered-off TVs are woken with a Wake-on-LAN magic packet.
//
// # Usage Example
//
//	client := remote.NewSamsungClient(remote.Options{
//	    IP:      "192.168.1.20",
//	    MAC:     "64:1C:AE:12:34:56",
//	    Name:    "samsung-tv-remote",
//	    OnToken: func(token string) { saveToken(token) },
//	})
//	defer client.Close()
//
//	_ = client.Wake(ctx)
//	if err := client.SendKey(ctx, "KEY_VOLUP"); err != nil {
//	    fmt.Println(remote.TroubleshootingHint(err))
//	}
package remote
