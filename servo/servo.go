package servo

import (
	"time"

	"ocpwm"
)

const (
	// default servo frame period, in milliseconds
	DEFAULT_SERVO_PERIOD = 20

	// defaults for servo duty, in microseconds
	DEFAULT_DUTY_MIN = 1000
	DEFAULT_DUTY_MAX = 2000
)

// Servo drives an RC servo from one PWM channel. The PTC output is active
// low, so the channel is wired through the usual inverting driver stage;
// the duty values here are the active pulse widths the servo sees.
type Servo struct {
	Channel *ocpwm.Channel

	period  time.Duration
	duty    time.Duration
	minDuty int // min duty in microseconds
	maxDuty int // max duty in microseconds
}

// Create a new servo on a PWM channel and initialise it to the standard
// 20ms frame, centred.
func New(channel *ocpwm.Channel) (*Servo, error) {
	result := &Servo{Channel: channel}
	result.SetRange(DEFAULT_DUTY_MIN, DEFAULT_DUTY_MAX)
	result.duty = time.Duration((DEFAULT_DUTY_MIN+DEFAULT_DUTY_MAX)/2) * time.Microsecond

	e := result.SetPeriod(DEFAULT_SERVO_PERIOD)
	if e != nil {
		return nil, e
	}

	return result, nil
}

// helper function to set the period of each cycle. Servos generally want this to be fixed, typically at 20ms.
func (servo *Servo) SetPeriod(milliseconds int) error {
	servo.period = time.Duration(milliseconds) * time.Millisecond
	return servo.apply(true)
}

// Set the servo to the specified angle, typically 0-180. This sets the duty cycle proportionally between min and max,
// which are defaulted to 1000-2000 microseconds range.
func (servo *Servo) Write(angle int) error {
	return servo.WriteMicroseconds(ocpwm.Map(angle, 0, 180, servo.minDuty, servo.maxDuty))
}

// Like the Arduino Servo.writeMicroseconds function. This sets the pulse width directly, so it is possible
// to write values too small or too large for the servo to track.
func (servo *Servo) WriteMicroseconds(us int) error {
	servo.duty = time.Duration(us) * time.Microsecond
	return servo.apply(true)
}

// Set the minimum and maximum number of microseconds for the servo. Write maps 0-180 to these values.
func (servo *Servo) SetRange(min int, max int) {
	servo.minDuty = min
	servo.maxDuty = max
}

// Detach stops driving the output. The last period and pulse width are kept
// and take effect again on the next Write.
func (servo *Servo) Detach() error {
	return servo.apply(false)
}

func (servo *Servo) apply(enabled bool) error {
	return servo.Channel.Apply(ocpwm.State{
		Period:   servo.period,
		Duty:     servo.duty,
		Polarity: ocpwm.Inverted,
		Enabled:  enabled,
	})
}
