package rpn

const Version = "0.1.0"
