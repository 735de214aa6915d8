package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivanmoore/raxgo"
)

var serveAddr string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "start a line-oriented TCP server in front of a rax.Tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := MakeServer(serveAddr)
			return s.Start()
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "0.0.0.0:6380", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

// session is the per-connection state a command loop goroutine threads
// through the owning goroutine via treeCmd closures: each connection gets
// its own cursor into the shared tree, but every actual Tree/Iterator
// method call happens on the Server's single owning goroutine.
type session struct {
	iter *rax.Iterator
}

// treeCmd is one unit of work handed to the owning goroutine: fn runs with
// exclusive access to the tree and this connection's session, and reply
// receives its textual result.
type treeCmd struct {
	fn    func(tr *rax.Tree, sess *session) string
	reply chan string
}

// Server owns the listener, the shutdown signal channel, and the single
// goroutine allowed to touch the tree: every connection goroutine funnels
// its tree access through a command channel rather than touching a shared
// map directly, since rax.Tree is not safe for concurrent use on its own.
type Server struct {
	addr     string
	listener net.Listener
	quitch   chan os.Signal
	wg       *sync.WaitGroup
	cmdCh    chan treeCmd
}

func MakeServer(addr string) *Server {
	var wg sync.WaitGroup
	return &Server{
		addr:   addr,
		quitch: make(chan os.Signal, 1),
		wg:     &wg,
		cmdCh:  make(chan treeCmd),
	}
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("raxctl: failed to bind %s: %w", s.addr, err)
	}
	defer listener.Close()
	s.listener = listener
	log.WithField("addr", s.addr).Info("listening")

	go s.owner()
	go s.serve()
	signal.Notify(s.quitch, syscall.SIGINT, syscall.SIGTERM)

	<-s.quitch
	log.Info("shutting down")
	s.wg.Wait()
	log.Info("shutdown complete")
	return nil
}

// owner is the single goroutine that ever touches the tree, draining
// cmdCh in order.
func (s *Server) owner() {
	tr := rax.New()
	for cmd := range s.cmdCh {
		cmd.reply <- cmd.fn(tr, nil)
	}
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			log.WithError(err).Warn("accept failed")
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	connLog := log.WithField("remote", conn.RemoteAddr().String())
	s.wg.Add(1)
	defer s.wg.Done()

	sess := &session{}
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				connLog.WithError(err).Warn("read failed")
			}
			return
		}
		reply := s.dispatch(strings.TrimSpace(line), sess)
		if _, err := conn.Write([]byte(reply + "\r\n")); err != nil {
			connLog.WithError(err).Warn("write failed")
			return
		}
	}
}

// dispatch parses one line of the line protocol and runs it on the owning
// goroutine, blocking until the result comes back.
func (s *Server) dispatch(line string, sess *session) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "ERR empty command"
	}
	name := strings.ToUpper(fields[0])
	args := fields[1:]

	run := func(fn func(tr *rax.Tree, sess *session) string) string {
		reply := make(chan string, 1)
		s.cmdCh <- treeCmd{fn: wrapSession(fn, sess), reply: reply}
		return <-reply
	}

	switch name {
	case "PING":
		return "PONG"
	case "INSERT", "TRYINSERT":
		if len(args) < 2 {
			return "ERR usage: " + name + " key value"
		}
		key, value := args[0], strings.Join(args[1:], " ")
		return run(func(tr *rax.Tree, _ *session) string {
			var inserted bool
			var err error
			if name == "INSERT" {
				inserted, _, err = tr.Insert([]byte(key), value)
			} else {
				inserted, _, err = tr.TryInsert([]byte(key), value)
			}
			if err != nil {
				return "ERR " + err.Error()
			}
			return fmt.Sprintf("OK inserted=%v", inserted)
		})
	case "GET":
		if len(args) != 1 {
			return "ERR usage: GET key"
		}
		key := args[0]
		return run(func(tr *rax.Tree, _ *session) string {
			v := tr.Find([]byte(key))
			if v == rax.NotFound {
				return "NIL"
			}
			return fmt.Sprintf("%v", v)
		})
	case "DEL":
		if len(args) != 1 {
			return "ERR usage: DEL key"
		}
		key := args[0]
		return run(func(tr *rax.Tree, _ *session) string {
			removed, _ := tr.Remove([]byte(key))
			return fmt.Sprintf("OK removed=%v", removed)
		})
	case "SIZE":
		return run(func(tr *rax.Tree, _ *session) string {
			return fmt.Sprintf("%d", tr.Size())
		})
	case "SEEK":
		if len(args) != 2 {
			return "ERR usage: SEEK op key"
		}
		op, key := args[0], args[1]
		return run(func(tr *rax.Tree, sess *session) string {
			sess.iter = tr.Iterator()
			if !sess.iter.Seek(op, []byte(key)) {
				return "EOF"
			}
			return fmt.Sprintf("%s %v", sess.iter.Key(), sess.iter.Value())
		})
	case "NEXT":
		return run(func(_ *rax.Tree, sess *session) string {
			return advance(sess, true)
		})
	case "PREV":
		return run(func(_ *rax.Tree, sess *session) string {
			return advance(sess, false)
		})
	case "RANDOMWALK":
		steps := 8
		if len(args) == 1 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				steps = n
			}
		}
		return run(func(tr *rax.Tree, sess *session) string {
			sess.iter = tr.Iterator()
			if !sess.iter.RandomWalk(steps) {
				return "EOF"
			}
			return fmt.Sprintf("%s %v", sess.iter.Key(), sess.iter.Value())
		})
	default:
		return "ERR unknown command " + name
	}
}

func advance(sess *session, forward bool) string {
	if sess.iter == nil {
		return "ERR no active cursor; SEEK first"
	}
	var ok bool
	if forward {
		ok = sess.iter.Next()
	} else {
		ok = sess.iter.Prev()
	}
	if !ok {
		return "EOF"
	}
	return fmt.Sprintf("%s %v", sess.iter.Key(), sess.iter.Value())
}

// wrapSession closes over the per-connection session so the owning
// goroutine's uniform treeCmd signature can still reach it.
func wrapSession(fn func(tr *rax.Tree, sess *session) string, sess *session) func(tr *rax.Tree, _ *session) string {
	return func(tr *rax.Tree, _ *session) string {
		return fn(tr, sess)
	}
}
