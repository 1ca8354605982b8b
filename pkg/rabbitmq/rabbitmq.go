package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

// message is the request envelope carried on the queue. The pattern selects
// the handler, data is the operation payload, and id correlates the reply.
type message struct {
	Pattern pattern         `json:"pattern"`
	Data    json.RawMessage `json:"data"`
	ID      string          `json:"id"`
}

type pattern struct {
	Cmd string `json:"cmd"`
}

// reply is the response envelope published to the requester's reply queue.
type reply struct {
	Response   interface{} `json:"response"`
	Err        string      `json:"err,omitempty"`
	IsDisposed bool        `json:"isDisposed"`
	ID         string      `json:"id"`
}

// HandlerFunc processes the data of one command and returns the response
// value, or an error to be surfaced to the requester.
type HandlerFunc func(data json.RawMessage) (interface{}, error)

// Router dispatches request envelopes to the handler registered for their
// command. It is independent of the broker connection so dispatch can be
// exercised directly in tests.
type Router struct {
	handlers map[string]HandlerFunc
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Handle registers a handler for the given command name.
func (r *Router) Handle(cmd string, h HandlerFunc) {
	r.handlers[cmd] = h
}

// Dispatch decodes one request envelope, invokes its handler, and returns the
// encoded reply envelope. A decode failure is returned as an error so the
// caller can reject the delivery; handler failures are encoded into the reply
// instead.
func (r *Router) Dispatch(body []byte) ([]byte, error) {
	var msg message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode request envelope: %w", err)
	}

	rep := reply{IsDisposed: true, ID: msg.ID}
	handler, ok := r.handlers[msg.Pattern.Cmd]
	if !ok {
		rep.Err = fmt.Sprintf("no handler registered for command '%s'", msg.Pattern.Cmd)
	} else {
		response, err := handler(msg.Data)
		if err != nil {
			rep.Err = err.Error()
		} else {
			rep.Response = response
		}
	}

	encoded, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply envelope: %w", err)
	}
	return encoded, nil
}

// Client holds the RabbitMQ connection and channel for serving one queue.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel, and declares the durable
// request queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable (persists messages across broker restarts)
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}

	log.Printf("RabbitMQ client connected, queue %s declared", cfg.Queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Serve consumes the request queue and answers each delivery through the
// router. Replies go to the delivery's ReplyTo queue with its CorrelationId.
// Deliveries whose envelope cannot be decoded are rejected without requeue so
// poison messages do not loop forever.
func (c *Client) Serve(router *Router) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack: manual acknowledgement after handling
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for requests on %s", c.queue)

	go func() {
		for msg := range msgs {
			body, err := router.Dispatch(msg.Body)
			if err != nil {
				log.Printf("Error dispatching message %d: %v", msg.DeliveryTag, err)
				if rejectErr := msg.Nack(false, false); rejectErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, rejectErr)
				}
				continue
			}

			if msg.ReplyTo != "" {
				err = c.channel.Publish(
					"",          // exchange: default exchange
					msg.ReplyTo, // routing key: the requester's reply queue
					false,       // mandatory
					false,       // immediate
					amqp.Publishing{
						ContentType:   "application/json",
						CorrelationId: msg.CorrelationId,
						Body:          body,
					})
				if err != nil {
					log.Printf("Error publishing reply for message %d: %v", msg.DeliveryTag, err)
				}
			}

			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}
