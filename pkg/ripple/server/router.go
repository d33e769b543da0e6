package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yourusername/ripple/pkg/ripple/encoding"
	"github.com/yourusername/ripple/pkg/ripple/files"
	"github.com/yourusername/ripple/pkg/ripple/http11"
)

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

// serveRequest dispatches req and returns the route label used for metrics.
func (s *Server) serveRequest(rw *http11.ResponseWriter, req *http11.Request) string {
	path := req.URIPath().String()

	switch {
	case path == "/" && req.Method == http11.MethodGET:
		s.respond(rw, http11.StatusOK, "", nil)
		return "root"

	case strings.HasPrefix(path, echoPrefix) && req.Method == http11.MethodGET:
		s.serveEcho(rw, req, path[len(echoPrefix):])
		return "echo"

	case path == "/user-agent" && req.Method == http11.MethodGET:
		ua, _ := req.Header.GetFold(http11.HeaderUserAgent)
		s.respond(rw, http11.StatusOK, http11.ContentTypePlain, ua.Bytes().Raw())
		return "user_agent"

	case strings.HasPrefix(path, filesPrefix) && s.files != nil:
		name := path[len(filesPrefix):]
		switch req.Method {
		case http11.MethodGET:
			s.serveFileRead(rw, name)
			return "files"
		case http11.MethodPOST:
			s.serveFileWrite(rw, name, req.Body.Raw())
			return "files"
		}

	case path == "/stats" && req.Method == http11.MethodGET:
		body, err := s.MarshalSnapshot()
		if err != nil {
			s.log.Error("encode stats", "error", err)
			s.respond(rw, http11.StatusInternalServerError, "", nil)
			return "stats"
		}
		s.respond(rw, http11.StatusOK, http11.ContentTypeJSON, body)
		return "stats"
	}

	s.respond(rw, http11.StatusNotFound, "", nil)
	return "not_found"
}

func (s *Server) serveEcho(rw *http11.ResponseWriter, req *http11.Request, text string) {
	body := []byte(text)

	accept, _ := req.Header.GetFold(http11.HeaderAcceptEncoding)
	if enc := encoding.Negotiate(accept.String()); enc != encoding.Identity {
		compressed, err := encoding.Compress(enc, body)
		if err != nil {
			s.log.Error("compress echo body", "encoding", enc.String(), "error", err)
			s.respond(rw, http11.StatusInternalServerError, "", nil)
			return
		}
		rw.SetHeader(http11.HeaderContentEncoding, enc.String())
		body = compressed
	}

	s.respond(rw, http11.StatusOK, http11.ContentTypePlain, body)
}

func (s *Server) serveFileRead(rw *http11.ResponseWriter, name string) {
	data, err := s.files.Read(name)
	switch {
	case err == nil:
		s.respond(rw, http11.StatusOK, http11.ContentTypeOctetStream, data)
	case errors.Is(err, files.ErrNotFound), errors.Is(err, files.ErrInvalidName):
		s.respond(rw, http11.StatusNotFound, "", nil)
	default:
		s.log.Error("read file", "name", name, "error", err)
		s.respond(rw, http11.StatusInternalServerError, "", nil)
	}
}

func (s *Server) serveFileWrite(rw *http11.ResponseWriter, name string, data []byte) {
	err := s.files.Write(name, data)
	switch {
	case err == nil:
		s.respond(rw, http11.StatusCreated, "", nil)
	case errors.Is(err, files.ErrInvalidName):
		s.respond(rw, http11.StatusBadRequest, "", nil)
	default:
		s.log.Error("write file", "name", name, "error", err)
		s.respond(rw, http11.StatusInternalServerError, "", nil)
	}
}

func (s *Server) respond(rw *http11.ResponseWriter, status int, contentType string, body []byte) {
	if err := rw.WriteResponse(status, contentType, body); err != nil {
		s.log.Debug("write response", "status", status, "error", err)
	}
}

func statusLabel(code int) string {
	return strconv.Itoa(code)
}
