package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
}

// sliceStreamHeader is the first (text) message of a slice stream. One binary
// message per Z plane follows, each Width*Height*4 RGBA bytes, z ascending.
type sliceStreamHeader struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Depth    int    `json:"depth"`
	Channels int    `json:"channels"`
	Checksum string `json:"checksum"`
}

// HandlerSliceStream streams a volume plane by plane so the page can start
// filling its 3D texture before the whole buffer arrives.
func (s *Server) HandlerSliceStream(w http.ResponseWriter, r *http.Request) {
	v, err := s.requestVolume(r)
	if err != nil {
		writeError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	defer conn.Close()

	hdr := sliceStreamHeader{
		Width:    v.Width,
		Height:   v.Height,
		Depth:    v.Depth,
		Channels: 4,
		Checksum: formatChecksum(v.Checksum()),
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("[web] ws set deadline error: %v", err)
		return
	}
	if err := conn.WriteJSON(hdr); err != nil {
		log.Printf("[web] ws write header error: %v", err)
		return
	}
	for z := 0; z < v.Depth; z++ {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("[web] ws set deadline error: %v", err)
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, v.ZSlice(z)); err != nil {
			log.Printf("[web] ws write slice %d error: %v", z, err)
			return
		}
	}
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait)); err != nil {
		log.Printf("[web] ws close error: %v", err)
	}
}
